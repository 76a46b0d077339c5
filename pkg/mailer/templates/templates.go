package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

// Template names.
const (
	VerifyEmailOTP       = "verify_email_otp"
	ResetPasswordOTP     = "reset_password_otp"
	ResetPasswordSuccess = "reset_password_success"
)

var subjects = map[string]string{
	VerifyEmailOTP:       "Verify Your Email",
	ResetPasswordOTP:     "Password Reset OTP",
	ResetPasswordSuccess: "Password Reset Successful",
}

// EmailData carries the fields the templates render.
type EmailData struct {
	Name           string `json:"Name"`
	Code           string `json:"Code,omitempty"`
	ExpiresMinutes int    `json:"ExpiresMinutes,omitempty"`
	CompanyName    string `json:"CompanyName"`
	SupportURL     string `json:"SupportURL,omitempty"`
}

// ToMap converts EmailData into the loosely typed Data field of an EmailJob.
func ToMap(d EmailData) map[string]any {
	m := map[string]any{
		"Name":        d.Name,
		"CompanyName": d.CompanyName,
	}
	if d.Code != "" {
		m["Code"] = d.Code
	}
	if d.ExpiresMinutes > 0 {
		m["ExpiresMinutes"] = d.ExpiresMinutes
	}
	if d.SupportURL != "" {
		m["SupportURL"] = d.SupportURL
	}
	return m
}

// FromMap is the inverse of ToMap, used by the email worker.
func FromMap(m map[string]any) EmailData {
	d := EmailData{}
	if v, ok := m["Name"].(string); ok {
		d.Name = v
	}
	if v, ok := m["Code"].(string); ok {
		d.Code = v
	}
	if v, ok := m["CompanyName"].(string); ok {
		d.CompanyName = v
	}
	if v, ok := m["SupportURL"].(string); ok {
		d.SupportURL = v
	}
	switch v := m["ExpiresMinutes"].(type) {
	case float64:
		d.ExpiresMinutes = int(v)
	case int:
		d.ExpiresMinutes = v
	}
	return d
}

// Render produces the subject and HTML body for a named template. The subject
// is suffixed with the company name when one is set.
func Render(name string, data EmailData) (subject, html string, err error) {
	subj, ok := subjects[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	if data.CompanyName != "" {
		subj = subj + " - " + data.CompanyName
	}

	t, err := htmpl.ParseFS(FS, name+".tmpl")
	if err != nil {
		return "", "", err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", "", err
	}
	return subj, buf.String(), nil
}
