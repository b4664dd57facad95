package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBType     string `env:"DBType" envDefault:"sqlite"`
	DSNURL     string `env:"DSN_URL" envDefault:""`
	DBUser     string `env:"DBUser" envDefault:""`
	DBPassword string `env:"DBPassword" envDefault:""`
	DBAddr     string `env:"DBAddr" envDefault:""`
	DBName     string `env:"DBName" envDefault:"monitoring_jalan"`
	DBPath     string `env:"DBPath" envDefault:"datas/monitoring_jalan.db"`
	DBPort     string `env:"DBPort" envDefault:"5432"`

	JWTSecret                string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTIssuer                string `env:"JWT_ISSUER" envDefault:"monitoring-jalan"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"1440"`
	SessionExpireMinutes     int    `env:"SESSION_EXPIRE_MINUTES" envDefault:"60"`
	ResetTokenExpireHours    int    `env:"RESET_PASSWORD_TOKEN_EXP_HOURS" envDefault:"1"`
	SetPasswordExpireHours   int    `env:"SET_PASSWORD_TOKEN_EXP_HOURS" envDefault:"24"`

	MailHost        string `env:"MAIL_HOST" envDefault:"smtp.resend.com"`
	MailPort        int    `env:"MAIL_PORT" envDefault:"465"`
	MailUsername    string `env:"MAIL_USERNAME" envDefault:"resend"`
	MailPassword    string `env:"MAIL_PASSWORD" envDefault:""`
	MailFromAddress string `env:"MAIL_FROM_ADDRESS" envDefault:"info@ekosistemdata.dev"`
	MailFromName    string `env:"MAIL_FROM_NAME" envDefault:"Monitoring Jalan"`

	AdminNotificationEmail string `env:"ADMIN_NOTIFICATION_EMAIL" envDefault:""`
	FrontendURL            string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	// Empty disables the restriction. Set e.g. "jabarprov.go.id" to only accept
	// registrations from that domain.
	AllowedEmailDomain string `env:"ALLOWED_EMAIL_DOMAIN" envDefault:""`
}

func ParseConfig() (Config, error) {
	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	logrus.Debugf("%#v\n", Conf)
	return Conf, nil
}
