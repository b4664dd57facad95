package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// Mail bodies mirror the copy the frontend team signed off for the dashboard;
// keep wording changes in sync with them.

const layoutTmpl = `<html>
  <body style="font-family: Arial, sans-serif; padding: 20px;">
    <div style="max-width: 600px; margin: 0 auto; background-color: #f9f9f9; padding: 30px; border-radius: 10px;">
      {{template "body" .}}
      <p style="color: #999; font-size: 12px; margin-top: 30px;">
        Email ini dikirim otomatis oleh sistem {{.AppName}}. Mohon tidak membalas email ini.
      </p>
    </div>
  </body>
</html>`

const registrationConfirmationTmpl = `{{define "body"}}
<h2 style="color: #333;">Registrasi Berhasil</h2>
<p>Halo {{.DisplayName}},</p>
<p>Terima kasih telah melakukan registrasi di sistem {{.AppName}}.</p>
<div style="background-color: #fff3cd; padding: 15px; border-radius: 5px; margin: 20px 0;">
  <p style="margin: 0; color: #856404;"><strong>Status:</strong> Menunggu Verifikasi Administrator</p>
</div>
<p>Akun Anda sedang dalam proses verifikasi oleh administrator. Anda akan menerima
email notifikasi untuk membuat password setelah akun Anda disetujui.</p>
{{end}}`

const adminNewRegistrationTmpl = `{{define "body"}}
<h2 style="color: #333;">Registrasi User Baru</h2>
<p>Terdapat permintaan registrasi baru yang menunggu verifikasi:</p>
<table style="border-collapse: collapse; width: 100%;">
  <tr><td style="padding: 6px 12px;"><strong>NIP</strong></td><td>{{.NIP}}</td></tr>
  <tr><td style="padding: 6px 12px;"><strong>Username</strong></td><td>{{.Username}}</td></tr>
  <tr><td style="padding: 6px 12px;"><strong>Email</strong></td><td>{{.Email}}</td></tr>
  <tr><td style="padding: 6px 12px;"><strong>Nama Lengkap</strong></td><td>{{.DisplayName}}</td></tr>
  <tr><td style="padding: 6px 12px;"><strong>Jabatan</strong></td><td>{{.Jabatan}}</td></tr>
  <tr><td style="padding: 6px 12px;"><strong>Instansi</strong></td><td>{{.Organization}}</td></tr>
  <tr><td style="padding: 6px 12px;"><strong>No. Telepon</strong></td><td>{{.NoTelepon}}</td></tr>
  <tr><td style="padding: 6px 12px;"><strong>Waktu Registrasi</strong></td><td>{{.RegisteredAt}}</td></tr>
</table>
<p>Silakan buka dashboard untuk menyetujui atau menolak permintaan ini.</p>
{{end}}`

const setPasswordTmpl = `{{define "body"}}
<p style="color: #333;">Yang Terhormat Bapak/Ibu {{.DisplayName}},</p>
<p>Akun Anda pada {{.AppName}} telah <strong>disetujui</strong> oleh administrator.</p>
<p>Klik tombol di bawah ini untuk membuat password dan mengaktifkan akun Anda:</p>
<div style="text-align: center; margin: 30px 0;">
  <a href="{{.ActionURL}}"
     style="background-color: #4CAF50; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">
    Buat Password
  </a>
</div>
<p>Atau copy link berikut ke browser Anda:</p>
<p style="word-break: break-all; color: #666;">{{.ActionURL}}</p>
<p style="color: #999; font-size: 12px;">Link ini akan kadaluarsa dalam {{.ExpiresIn}}.</p>
{{end}}`

const resetPasswordTmpl = `{{define "body"}}
<h2 style="color: #333;">Reset Password</h2>
<p>Halo,</p>
<p>Anda menerima email ini karena ada permintaan untuk reset password akun Anda.</p>
<p>Klik tombol di bawah ini untuk reset password Anda:</p>
<div style="text-align: center; margin: 30px 0;">
  <a href="{{.ActionURL}}"
     style="background-color: #4CAF50; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">
    Reset Password
  </a>
</div>
<p>Atau copy link berikut ke browser Anda:</p>
<p style="word-break: break-all; color: #666;">{{.ActionURL}}</p>
<p style="color: #999; font-size: 12px;">Link ini akan kadaluarsa dalam {{.ExpiresIn}}.
Jika Anda tidak meminta reset password, abaikan email ini.</p>
{{end}}`

const passwordChangedTmpl = `{{define "body"}}
<h2 style="color: #333;">Password Berhasil Diubah</h2>
<p>Halo {{.DisplayName}},</p>
<p>Password akun Anda pada {{.AppName}} baru saja diubah.</p>
<p>Jika Anda tidak melakukan perubahan ini, segera hubungi administrator.</p>
{{end}}`

const rejectionTmpl = `{{define "body"}}
<p style="color: #333;">Yang Terhormat Bapak/Ibu {{.DisplayName}},</p>
<p>Mohon maaf, permintaan registrasi akun Anda pada {{.AppName}} <strong>tidak dapat disetujui</strong>.</p>
{{if .Notes}}<div style="background-color: #f8d7da; padding: 15px; border-radius: 5px; margin: 20px 0;">
  <p style="margin: 0; color: #721c24;"><strong>Catatan:</strong> {{.Notes}}</p>
</div>{{end}}
<p>Silakan hubungi administrator apabila Anda membutuhkan informasi lebih lanjut.</p>
{{end}}`

const accountCreatedTmpl = `{{define "body"}}
<h2 style="color: #333;">Akun Anda Telah Dibuat</h2>
<p>Halo {{.DisplayName}},</p>
<p>Administrator telah membuatkan akun untuk Anda pada {{.AppName}}.</p>
<table style="border-collapse: collapse;">
  <tr><td style="padding: 6px 12px;"><strong>Username</strong></td><td>{{.Username}}</td></tr>
  <tr><td style="padding: 6px 12px;"><strong>Password Sementara</strong></td><td>{{.TempPassword}}</td></tr>
</table>
<p>Segera login dan ubah password Anda:</p>
<div style="text-align: center; margin: 30px 0;">
  <a href="{{.ActionURL}}"
     style="background-color: #4CAF50; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">
    Login
  </a>
</div>
{{end}}`

type templateData struct {
	AppName      string
	DisplayName  string
	ActionURL    string
	ExpiresIn    string
	Notes        string
	Username     string
	TempPassword string

	NIP          string
	Email        string
	Jabatan      string
	Organization string
	NoTelepon    string
	RegisteredAt string
}

func renderTemplate(name, body string, data templateData) (string, error) {
	tmpl, err := template.New(name).Parse(layoutTmpl)
	if err != nil {
		return "", fmt.Errorf("parse layout: %w", err)
	}
	if _, err := tmpl.Parse(body); err != nil {
		return "", fmt.Errorf("parse %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute %s template: %w", name, err)
	}
	return buf.String(), nil
}
