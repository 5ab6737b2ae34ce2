package summary

import (
	"fmt"
	"strings"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
)

const (
	confirmationTemplate = "Hi %s, this is %s confirming your %s appointment for %s to go over your %s options. %s If anything changes, just reply to this message. Thank you!"
	voicemailTemplate    = "Hi %s, this is %s calling about your %s options.%s Please give me a call back%s. Thanks, and have a great day!"
)

var visitNotes = map[domain.VisitType]string{
	domain.VisitStore:  "Please bring a photo ID when you stop by the store.",
	domain.VisitMobile: "Our mobile team will come to you, so no need to travel.",
}

func customerOrThere(c domain.CallContext) string {
	if name := strings.TrimSpace(c.CustomerName); name != "" {
		return name
	}
	return "there"
}

func repOrDefault(c domain.CallContext) string {
	if rep := strings.TrimSpace(c.RepName); rep != "" {
		return rep
	}
	return "your sales rep"
}

func serviceOrDefault(l labels) string {
	if l.lead == "" {
		return "service"
	}
	return l.lead
}

func confirmation(c domain.CallContext, l labels) string {
	when := l.appointment
	if when == "" {
		when = "the time we discussed"
	}
	visit := c.EffectiveVisitType()
	return fmt.Sprintf(confirmationTemplate,
		customerOrThere(c),
		repOrDefault(c),
		strings.ToLower(l.visit),
		strings.ToLower(when),
		serviceOrDefault(l),
		visitNotes[visit],
	)
}

func voicemail(c domain.CallContext, l labels) string {
	senior := ""
	if c.Is55Plus {
		senior = " You may also qualify for our 55+ savings."
	}
	when := ""
	if l.callback != "" {
		when = " " + strings.ToLower(l.callback)
	}
	return fmt.Sprintf(voicemailTemplate,
		customerOrThere(c),
		repOrDefault(c),
		serviceOrDefault(l),
		senior,
		when,
	)
}
