// Package harness synthesizes the four files submitted as a sandbox
// invocation: a launcher, a driver, and the two player source files,
// with randomized non-colliding module names so neither player can
// predict or introspect the other's import name.
package harness

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const launcherName = "run"
const driverFileName = "driver.py"

// Files holds the file set to submit as a sandbox round half. It does
// not record which module is the subject; the synthesized driver
// imports the subject as Sub and the opponent as Opp.
type Files struct {
	// Files maps file name to content; suitable for sandbox.PackFiles.
	Files map[string]string
}

// Build synthesizes one round half's file set. subjectCode is the
// program whose decision is being observed; opponentCode is the other
// player's program. opponentHistory is the subject's view of the
// opponent's past defections in this matchup, oldest round first;
// entries are *bool to allow a null (incomplete) history value,
// mirrored as a literal None in the synthesized driver.
func Build(subjectCode, opponentCode string, opponentHistory []*bool) Files {
	subjectModule := "mod_" + randomSuffix()
	opponentModule := "mod_" + randomSuffix()

	driver := renderDriver(subjectModule, opponentModule, opponentHistory)

	files := map[string]string{
		launcherName: renderLauncher(),
		driverFileName: driver,
		subjectModule + ".py": subjectCode,
		opponentModule + ".py": opponentCode,
	}

	return Files{Files: files}
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func renderLauncher() string {
	return "#!/bin/sh\nexec python3 " + driverFileName + "\n"
}

// renderDriver produces a Python driver that imports both players under
// their randomized module names, builds the opponent-history literal,
// invokes Sub.should_defect(Opp.should_defect, opp_defection_history),
// and exits 100 on defect, 101 on cooperate.
func renderDriver(subjectModule, opponentModule string, opponentHistory []*bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "import sys\n")
	fmt.Fprintf(&b, "import %s as Sub\n", subjectModule)
	fmt.Fprintf(&b, "import %s as Opp\n", opponentModule)
	fmt.Fprintf(&b, "opp_defection_history = [%s]\n", historyLiteral(opponentHistory))
	fmt.Fprintf(&b, "defected = Sub.should_defect(Opp.should_defect, opp_defection_history)\n")
	fmt.Fprintf(&b, "sys.exit(100 if defected else 101)\n")
	return b.String()
}

// historyLiteral renders a defection history as a comma-separated
// Python literal of None | True | False values.
func historyLiteral(history []*bool) string {
	parts := make([]string, len(history))
	for i, v := range history {
		switch {
		case v == nil:
			parts[i] = "None"
		case *v:
			parts[i] = "True"
		default:
			parts[i] = "False"
		}
	}
	return strings.Join(parts, ", ")
}
