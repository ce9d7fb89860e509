package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/truemail-rb/truemail-go"
)

// Validator bundles struct validation with optional mailbox verification.
type Validator struct {
	Validate    *validator.Validate
	VerifyEmail func(email string) bool
}

var (
	instance      *Validator
	once          sync.Once
	configuration *truemail.Configuration
)

// GetValidator returns the process-wide validator instance.
func GetValidator() *Validator {
	once.Do(func() {
		configuration, _ = truemail.NewConfiguration(truemail.ConfigurationAttr{
			VerifierEmail:         "team@red-social.dev",
			ValidationTypeDefault: "mx",
			SmtpFailFast:          true,
		})

		instance = &Validator{
			Validate:    validator.New(validator.WithRequiredStructEnabled()),
			VerifyEmail: validateEmail,
		}
	})

	return instance
}

func validateEmail(email string) bool {
	return truemail.IsValid(email, configuration)
}
