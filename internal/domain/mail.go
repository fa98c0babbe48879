package domain

const (
	MailAvailabilitySaved      = "availability_saved"
	MailAvailabilitySaveFailed = "availability_save_failed"
)

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type AvailabilitySavedMailData struct {
	ProviderID  string   `json:"providerID"`
	Actor       string   `json:"actor"`
	EnabledDays []string `json:"enabledDays"`
	Exceptions  int      `json:"exceptions"`
}

type AvailabilitySaveFailedMailData struct {
	ProviderID  string   `json:"providerID"`
	Actor       string   `json:"actor"`
	Status      string   `json:"status"`
	FailedParts []string `json:"failedParts"`
}
