package mailer

import (
	"bytes"
	"html/template"

	"github.com/Masterminds/sprig/v3"
)

const verifyEmailTemplate = `<p>Dear {{ .Name | default "customer" | title }},</p>
<p>Thank you for registering. Please confirm your email address.</p>
<a href="{{ .URL }}" style="color:white;background:#071263;margin-top:10px;padding:20px;display:block">Verify Email</a>`

const forgotPasswordTemplate = `<div>
<p>Dear, {{ .Name | default "customer" | title }}</p>
<p>You requested a password reset. Please use the following OTP code to reset your password.</p>
<div style="background:yellow;font-size:20px;padding:20px;text-align:center;font-weight:800">{{ .OTP }}</div>
<p>This otp is valid for {{ .ValidFor }} only. Enter this otp in the website to proceed with resetting your password.</p>
<br/>
<p>Thanks</p>
</div>`

var (
	verifyEmailTmpl    = template.Must(template.New("verify-email").Funcs(sprig.FuncMap()).Parse(verifyEmailTemplate))
	forgotPasswordTmpl = template.Must(template.New("forgot-password").Funcs(sprig.FuncMap()).Parse(forgotPasswordTemplate))
)

const (
	SubjectVerifyEmail    = "Verify email from Storefront"
	SubjectForgotPassword = "Forgot password from Storefront"
)

// VerifyEmail renders the registration confirmation body.
func VerifyEmail(name, url string) (string, error) {
	return render(verifyEmailTmpl, map[string]string{"Name": name, "URL": url})
}

// ForgotPassword renders the OTP body. validFor is shown verbatim, e.g. "1 hour".
func ForgotPassword(name, otp, validFor string) (string, error) {
	return render(forgotPasswordTmpl, map[string]string{"Name": name, "OTP": otp, "ValidFor": validFor})
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
