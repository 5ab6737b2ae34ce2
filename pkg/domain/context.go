package domain

// LeadType is the service line the customer is being called about.
type LeadType string

const (
	LeadWireless LeadType = "wireless"
	LeadFiber    LeadType = "fiber"
	LeadBoth     LeadType = "both"
	LeadUpgrades LeadType = "upgrades"
	LeadUnknown  LeadType = "unknown"
)

// UpgradeType is the device family for upgrade leads.
type UpgradeType string

const (
	UpgradeIPhone  UpgradeType = "iphone"
	UpgradeAndroid UpgradeType = "android"
	UpgradeNotSure UpgradeType = "not_sure"
)

// VisitType selects between an in-store and a mobile appointment.
type VisitType string

const (
	VisitStore  VisitType = "store"
	VisitMobile VisitType = "mobile"
)

// TimeSlot is an appointment, callback or reschedule time choice.
type TimeSlot string

const (
	SlotTodayMorning      TimeSlot = "today_morning"
	SlotTodayAfternoon    TimeSlot = "today_afternoon"
	SlotTodayEvening      TimeSlot = "today_evening"
	SlotTomorrow          TimeSlot = "tomorrow"
	SlotTomorrowMorning   TimeSlot = "tomorrow_morning"
	SlotTomorrowAfternoon TimeSlot = "tomorrow_afternoon"
	SlotThisWeek          TimeSlot = "this_week"
	SlotNextWeek          TimeSlot = "next_week"
)

// Outcome is how the call ended.
type Outcome string

const (
	OutcomeBooked        Outcome = "booked"
	OutcomeCallback      Outcome = "callback"
	OutcomeNotInterested Outcome = "not_interested"
	OutcomeNoAnswer      Outcome = "no_answer"
	OutcomeVoicemail     Outcome = "voicemail"
	OutcomeWrongNumber   Outcome = "wrong_number"
)

// Context field names, as used by option patches, visibleWhen and reset.
const (
	FieldLeadType        = "leadType"
	FieldIs55Plus        = "is55Plus"
	FieldUpgradeType     = "upgradeType"
	FieldEventSale       = "eventSale"
	FieldCustomerName    = "customerName"
	FieldRepName         = "repName"
	FieldNotes           = "notes"
	FieldVisitType       = "visitType"
	FieldAppointmentTime = "appointmentTime"
	FieldCallbackTime    = "callbackTime"
	FieldRescheduleTime  = "rescheduleTime"
	FieldOutcome         = "outcome"
)

// CallContext is the mutable record of everything learned or decided so far
// in a call. All fields are scalars, so a value copy is a deep copy.
// An empty string means "unset" for the optional enum fields.
type CallContext struct {
	LeadType        LeadType    `json:"leadType,omitempty" yaml:"leadType,omitempty" mapstructure:"leadType" validate:"omitempty,oneof=wireless fiber both upgrades unknown"`
	Is55Plus        bool        `json:"is55Plus" yaml:"is55Plus" mapstructure:"is55Plus"`
	UpgradeType     UpgradeType `json:"upgradeType,omitempty" yaml:"upgradeType,omitempty" mapstructure:"upgradeType" validate:"omitempty,oneof=iphone android not_sure"`
	EventSale       bool        `json:"eventSale" yaml:"eventSale" mapstructure:"eventSale"`
	CustomerName    string      `json:"customerName,omitempty" yaml:"customerName,omitempty" mapstructure:"customerName"`
	RepName         string      `json:"repName,omitempty" yaml:"repName,omitempty" mapstructure:"repName"`
	Notes           string      `json:"notes,omitempty" yaml:"notes,omitempty" mapstructure:"notes"`
	VisitType       VisitType   `json:"visitType" yaml:"visitType" mapstructure:"visitType" validate:"omitempty,oneof=store mobile"`
	AppointmentTime TimeSlot    `json:"appointmentTime,omitempty" yaml:"appointmentTime,omitempty" mapstructure:"appointmentTime" validate:"omitempty,oneof=today_morning today_afternoon today_evening tomorrow tomorrow_morning tomorrow_afternoon this_week next_week"`
	CallbackTime    TimeSlot    `json:"callbackTime,omitempty" yaml:"callbackTime,omitempty" mapstructure:"callbackTime" validate:"omitempty,oneof=today_morning today_afternoon today_evening tomorrow tomorrow_morning tomorrow_afternoon this_week next_week"`
	RescheduleTime  TimeSlot    `json:"rescheduleTime,omitempty" yaml:"rescheduleTime,omitempty" mapstructure:"rescheduleTime" validate:"omitempty,oneof=today_morning today_afternoon today_evening tomorrow tomorrow_morning tomorrow_afternoon this_week next_week"`
	Outcome         Outcome     `json:"outcome,omitempty" yaml:"outcome,omitempty" mapstructure:"outcome" validate:"omitempty,oneof=booked callback not_interested no_answer voicemail wrong_number"`
}

// NewCallContext returns a context with default values.
func NewCallContext() CallContext {
	return CallContext{VisitType: VisitStore}
}

// BranchKey selects the script variant for the context.
func (c CallContext) BranchKey() string {
	return string(c.LeadType)
}

// UpgradeApplies reports whether UpgradeType is meaningful for the lead type.
func (c CallContext) UpgradeApplies() bool {
	switch c.LeadType {
	case LeadWireless, LeadUpgrades, LeadBoth:
		return true
	}
	return false
}

// Flag returns the value of a named boolean field.
// ok is false when name does not denote a boolean field.
func (c CallContext) Flag(name string) (value bool, ok bool) {
	switch name {
	case FieldIs55Plus:
		return c.Is55Plus, true
	case FieldEventSale:
		return c.EventSale, true
	}
	return false, false
}

// IsFlagField reports whether name denotes a boolean context field.
func IsFlagField(name string) bool {
	_, ok := CallContext{}.Flag(name)
	return ok
}

// EffectiveVisitType returns the visit type, treating unset as in-store.
func (c CallContext) EffectiveVisitType() VisitType {
	if c.VisitType == "" {
		return VisitStore
	}
	return c.VisitType
}
