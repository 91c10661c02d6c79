package stage

import (
	"fmt"

	casemodels "appealboard/internal/cases/models"
)

// Notification texts carry a small amount of markup; the web channel renders
// it and the persisted channel stores it verbatim.

func caseLink(c *casemodels.Case) string {
	return fmt.Sprintf(`<b><a href="/cases/%s">%s</a></b>`, c.ID, c.CaseNumber)
}

func meetingsLink(c *casemodels.Case) string {
	return fmt.Sprintf(`<b><a href="/cases/%s/meetings">%s</a></b>`, c.ID, c.CaseNumber)
}

// historyLine is the append-only audit wording for a stage change.
func historyLine(title string, code int) string {
	return fmt.Sprintf("Case stage changed to %q (code %d)", title, code)
}

// genericMessage goes to the whole case audience on every transition.
func genericMessage(c *casemodels.Case, title string) string {
	return fmt.Sprintf("Stage of case %s changed to %q.", caseLink(c), title)
}

func secretaryAssignedMessage(c *casemodels.Case) string {
	return fmt.Sprintf("You are assigned secretary for case %s.", caseLink(c))
}

func expertInvitedMessage(c *casemodels.Case) string {
	return fmt.Sprintf("You are invited as expert to case %s.", caseLink(c))
}

func collegiumMemberMessage(c *casemodels.Case) string {
	return fmt.Sprintf("You are included in the collegium of case %s.", caseLink(c))
}

func meetingInvitationMessage(c *casemodels.Case) string {
	return fmt.Sprintf("You are invited to the meeting on case %s. Please confirm your participation.", meetingsLink(c))
}
