// Package form validates the contact, signup, signin and OTP forms.
package form

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Field names shared by every form
const (
	FieldName     = "name"
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldSubject  = "subject"
	FieldMessage  = "message"
	FieldOTP      = "otp"
)

const (
	MinPasswordLength = 6
	MinMessageLength  = 10
)

// Kind selects the rule set
type Kind int

const (
	Contact Kind = iota
	Signup
	Signin
	Verify
)

func (k Kind) String() string {
	switch k {
	case Contact:
		return "contact"
	case Signup:
		return "signup"
	case Signin:
		return "signin"
	case Verify:
		return "verify"
	default:
		return "unknown"
	}
}

// Fields lists the fields a form of kind k collects, in display order
func (k Kind) Fields() []string {
	switch k {
	case Contact:
		return []string{FieldName, FieldEmail, FieldSubject, FieldMessage}
	case Signup:
		return []string{FieldUsername, FieldEmail, FieldPassword}
	case Signin:
		return []string{FieldEmail, FieldPassword}
	case Verify:
		return []string{FieldOTP}
	default:
		return nil
	}
}

var emailShape = regexp.MustCompile(`^[^\s@<>]+@[^\s@<>]+\.[^\s@<>]+$`)

// trimmed adapts a rule so it sees the value without surrounding whitespace
type trimmed struct{ rule validation.Rule }

func (t trimmed) Validate(value interface{}) error {
	if s, ok := value.(string); ok {
		value = strings.TrimSpace(s)
	}
	return t.rule.Validate(value)
}

var (
	nameRules = []validation.Rule{
		trimmed{validation.Required.Error("Name is required")},
	}
	usernameRules = []validation.Rule{
		trimmed{validation.Required.Error("Username is required")},
	}
	emailRules = []validation.Rule{
		trimmed{validation.Required.Error("Email is required")},
		trimmed{validation.Match(emailShape).Error("Email is invalid")},
	}
	signupPasswordRules = []validation.Rule{
		validation.Required.Error("Password must be at least 6 characters"),
		validation.RuneLength(MinPasswordLength, 0).Error("Password must be at least 6 characters"),
	}
	signinPasswordRules = []validation.Rule{
		validation.Required.Error("Password is required"),
	}
	subjectRules = []validation.Rule{
		trimmed{validation.Required.Error("Subject is required")},
	}
	messageRules = []validation.Rule{
		trimmed{validation.Required.Error("Message is required")},
		validation.RuneLength(MinMessageLength, 0).Error("Message must be at least 10 characters"),
	}
	otpRules = []validation.Rule{
		trimmed{validation.Required.Error("OTP is required")},
	}
)

func rulesFor(k Kind) map[string][]validation.Rule {
	switch k {
	case Contact:
		return map[string][]validation.Rule{
			FieldName:    nameRules,
			FieldEmail:   emailRules,
			FieldSubject: subjectRules,
			FieldMessage: messageRules,
		}
	case Signup:
		return map[string][]validation.Rule{
			FieldUsername: usernameRules,
			FieldEmail:    emailRules,
			FieldPassword: signupPasswordRules,
		}
	case Signin:
		return map[string][]validation.Rule{
			FieldEmail:    emailRules,
			FieldPassword: signinPasswordRules,
		}
	case Verify:
		return map[string][]validation.Rule{
			FieldOTP: otpRules,
		}
	default:
		return nil
	}
}

// Errors maps a field name to its message. Only invalid fields appear.
type Errors map[string]string

// Fields returns the invalid field names in sorted order
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Validate checks fields against the rules for kind k. Missing fields are
// treated as empty. Each invalid field reports its first failing rule.
func Validate(k Kind, fields map[string]string) Errors {
	verrs := validation.Errors{}
	for field, rules := range rulesFor(k) {
		verrs[field] = validation.Validate(fields[field], rules...)
	}

	out := Errors{}
	filtered, _ := verrs.Filter().(validation.Errors)
	for field, err := range filtered {
		out[field] = err.Error()
	}
	return out
}

// Form holds the values and errors of one form instance
type Form struct {
	mu     sync.Mutex
	kind   Kind
	values map[string]string
	errors Errors
}

// New creates an empty form of kind k
func New(k Kind) *Form {
	return &Form{kind: k, values: map[string]string{}, errors: Errors{}}
}

// Kind returns the form's rule set
func (f *Form) Kind() Kind {
	return f.kind
}

// Set stores a value and clears that field's error
func (f *Form) Set(field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[field] = value
	delete(f.errors, field)
}

// Get returns a field value
func (f *Form) Get(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Values returns a copy of all values
func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Errors returns a copy of the current errors
func (f *Form) Errors() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(Errors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Error returns the message for one field, or ""
func (f *Form) Error(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[field]
}

// Submit validates every field. It returns true when the form may be sent.
func (f *Form) Submit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = Validate(f.kind, f.values)
	return len(f.errors) == 0
}

// Reset clears values and errors
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = map[string]string{}
	f.errors = Errors{}
}

// Check validates a single value against the rules of one field. It is
// meant for per-field validators in interactive forms.
func Check(k Kind, field, value string) error {
	rules, ok := rulesFor(k)[field]
	if !ok {
		return nil
	}
	return validation.Validate(value, rules...)
}
