package summary

import "github.com/drelynlikescode26/callflow-assist/pkg/domain"

var leadTypeLabels = map[domain.LeadType]string{
	domain.LeadWireless: "Wireless",
	domain.LeadFiber:    "Fiber",
	domain.LeadBoth:     "Wireless + Fiber",
	domain.LeadUpgrades: "Device Upgrade",
	domain.LeadUnknown:  "Unknown Service",
}

var upgradeTypeLabels = map[domain.UpgradeType]string{
	domain.UpgradeIPhone:  "iPhone",
	domain.UpgradeAndroid: "Android",
	domain.UpgradeNotSure: "Not Sure",
}

var timeSlotLabels = map[domain.TimeSlot]string{
	domain.SlotTodayMorning:      "Today Morning",
	domain.SlotTodayAfternoon:    "Today Afternoon",
	domain.SlotTodayEvening:      "Today Evening",
	domain.SlotTomorrow:          "Tomorrow",
	domain.SlotTomorrowMorning:   "Tomorrow Morning",
	domain.SlotTomorrowAfternoon: "Tomorrow Afternoon",
	domain.SlotThisWeek:          "This Week",
	domain.SlotNextWeek:          "Next Week",
}

var visitTypeLabels = map[domain.VisitType]string{
	domain.VisitStore:  "In-Store",
	domain.VisitMobile: "Mobile Visit",
}

var outcomeLabels = map[domain.Outcome]string{
	domain.OutcomeBooked:        "Appointment Booked",
	domain.OutcomeCallback:      "Callback Scheduled",
	domain.OutcomeNotInterested: "Not Interested",
	domain.OutcomeNoAnswer:      "No Answer",
	domain.OutcomeVoicemail:     "Left Voicemail",
	domain.OutcomeWrongNumber:   "Wrong Number",
}

// LeadTypeLabel returns the display label for a lead type.
func LeadTypeLabel(v domain.LeadType) (string, bool) {
	l, ok := leadTypeLabels[v]
	return l, ok
}

// UpgradeTypeLabel returns the display label for an upgrade type.
func UpgradeTypeLabel(v domain.UpgradeType) (string, bool) {
	l, ok := upgradeTypeLabels[v]
	return l, ok
}

// TimeSlotLabel returns the display label for a time slot.
func TimeSlotLabel(v domain.TimeSlot) (string, bool) {
	l, ok := timeSlotLabels[v]
	return l, ok
}

// OutcomeLabel returns the display label for an outcome.
func OutcomeLabel(v domain.Outcome) (string, bool) {
	l, ok := outcomeLabels[v]
	return l, ok
}
