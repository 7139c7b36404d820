package harness

import (
	"strings"
	"testing"
)

func TestBuild_FileSet(t *testing.T) {
	files := Build("# subject", "# opponent", nil)

	if files.Files[launcherName] == "" {
		t.Error("launcher file missing")
	}
	if files.Files[driverFileName] == "" {
		t.Error("driver file missing")
	}

	var subjectFile, opponentFile string
	for name, content := range files.Files {
		if content == "# subject" {
			subjectFile = name
		}
		if content == "# opponent" {
			opponentFile = name
		}
	}
	if subjectFile == "" || opponentFile == "" {
		t.Fatal("subject/opponent source files not found in synthesized set")
	}
	if subjectFile == opponentFile {
		t.Error("subject and opponent must be written to distinct module files")
	}
}

func TestBuild_ModuleNamesDoNotCollide(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		files := Build("# a", "# b", nil)
		for name := range files.Files {
			if name == launcherName || name == driverFileName {
				continue
			}
			if seen[name] {
				t.Fatalf("module file name %q collided across Build calls", name)
			}
			seen[name] = true
		}
	}
}

func TestHistoryLiteral(t *testing.T) {
	truth := true
	falsy := false
	history := []*bool{nil, &truth, &falsy}

	got := historyLiteral(history)
	want := "None, True, False"
	if got != want {
		t.Errorf("historyLiteral() = %q, want %q", got, want)
	}
}

func TestHistoryLiteral_Empty(t *testing.T) {
	if got := historyLiteral(nil); got != "" {
		t.Errorf("historyLiteral(nil) = %q, want empty string", got)
	}
}

func TestRenderDriver_ReferencesBothModules(t *testing.T) {
	driver := renderDriver("mod_sub", "mod_opp", nil)
	if !strings.Contains(driver, "import mod_sub as Sub") {
		t.Error("driver does not import the subject module")
	}
	if !strings.Contains(driver, "import mod_opp as Opp") {
		t.Error("driver does not import the opponent module")
	}
	if !strings.Contains(driver, "sys.exit(100 if defected else 101)") {
		t.Error("driver does not exit with the documented exit-code protocol")
	}
}
