package analytics

// Properties is the closed set of per-event-type payload shapes. Each tracked
// event carries at most one variant; the tracker serializes it to the JSON
// properties column.
type Properties interface {
	isProperties()
}

// CompletionProperties is attached to game_complete events.
type CompletionProperties struct {
	CompletionTime float64 `json:"completion_time"`
	CorrectAnswers int     `json:"correct_answers"`
}

// ReferralProperties is attached to referral_used events.
type ReferralProperties struct {
	ReferrerParticipantID uint    `json:"referrer_participant_id"`
	DiscountAmount        float64 `json:"discount_amount"`
}

// PaymentProperties is attached to payment_attempt, payment_success and
// payment_failure events.
type PaymentProperties struct {
	Method         string  `json:"method,omitempty"`
	DiscountAmount float64 `json:"discount_amount,omitempty"`
	FailureReason  string  `json:"failure_reason,omitempty"`
}

// MessageProperties is attached to whatsapp_sent and email_sent events.
type MessageProperties struct {
	Template string `json:"template,omitempty"`
	Channel  string `json:"channel,omitempty"`
}

// PrizeProperties is attached to winner_selected, claim_initiated and
// prize_shipped events.
type PrizeProperties struct {
	PrizeName      string `json:"prize_name,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

func (CompletionProperties) isProperties() {}
func (ReferralProperties) isProperties()   {}
func (PaymentProperties) isProperties()    {}
func (MessageProperties) isProperties()    {}
func (PrizeProperties) isProperties()      {}
