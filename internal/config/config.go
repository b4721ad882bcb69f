package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Origin          string
	Destination     string
	DepartureDate   string
	ReturnDate      string
	Passengers      int
	FlexibilityDays int

	MinTripDays       int
	MaxTripDays       int
	IdealTripDays     int
	MaxFlexibleChecks int

	TargetPrice       float64
	GoodPrice         float64
	AlwaysNotifyBelow float64
	MinDropForAlert   float64
	BaselinePrice     float64

	EnabledSources []string

	UseTelegram      bool
	TelegramBotToken string
	TelegramChatID   string
	ListenCommands   bool

	EmailAddress  string
	EmailPassword string
	SMTPHost      string
	SMTPPort      int

	AmadeusURL          string
	AmadeusClientId     string
	AmadeusClientSecret string

	SearchTimeout time.Duration
	CheckInterval time.Duration
	HistoryDir    string

	HTTPAddr  string
	JWTSecret string
	JWTUser   string
	JWTPass   string
}

func Load() *Config {
	v := viper.New()

	v.SetDefault("origin", "FCO")
	v.SetDefault("destination", "MEX")
	v.SetDefault("departure_date", "2026-01-12")
	v.SetDefault("return_date", "2026-02-08")
	v.SetDefault("passengers", 4)
	v.SetDefault("flexibility_days", 7)

	v.SetDefault("min_trip_days", 25)
	v.SetDefault("max_trip_days", 35)
	v.SetDefault("ideal_trip_days", 28)
	v.SetDefault("max_flexible_checks", 5)

	v.SetDefault("target_price", 1000)
	v.SetDefault("good_price", 1150)
	v.SetDefault("always_notify_below", 1200)
	v.SetDefault("min_drop_for_alert", 20)
	v.SetDefault("baseline_price", 1420)

	v.SetDefault("enabled_sources", "amadeus,google,skyscanner,kayak,aeromexico")

	v.SetDefault("use_telegram", true)
	v.SetDefault("listen_commands", false)

	v.SetDefault("smtp_host", "smtp.gmail.com")
	v.SetDefault("smtp_port", 587)

	v.SetDefault("amadeus_url", "https://test.api.amadeus.com")

	v.SetDefault("search_timeout", "20s")
	v.SetDefault("check_interval", "6h")
	v.SetDefault("history_dir", ".")

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("auth_user", "demo")
	v.SetDefault("auth_pass", "demo123")

	if path := os.Getenv("MONITOR_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		// Fallback to conventional locations for local dev
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/flight-monitor")
	}

	_ = v.ReadInConfig() // defaults + env vars are enough on their own

	v.AutomaticEnv()

	return &Config{
		Origin:          strings.ToUpper(v.GetString("origin")),
		Destination:     strings.ToUpper(v.GetString("destination")),
		DepartureDate:   v.GetString("departure_date"),
		ReturnDate:      v.GetString("return_date"),
		Passengers:      v.GetInt("passengers"),
		FlexibilityDays: v.GetInt("flexibility_days"),

		MinTripDays:       v.GetInt("min_trip_days"),
		MaxTripDays:       v.GetInt("max_trip_days"),
		IdealTripDays:     v.GetInt("ideal_trip_days"),
		MaxFlexibleChecks: v.GetInt("max_flexible_checks"),

		TargetPrice:       v.GetFloat64("target_price"),
		GoodPrice:         v.GetFloat64("good_price"),
		AlwaysNotifyBelow: v.GetFloat64("always_notify_below"),
		MinDropForAlert:   v.GetFloat64("min_drop_for_alert"),
		BaselinePrice:     v.GetFloat64("baseline_price"),

		EnabledSources: splitSources(v.GetString("enabled_sources")),

		UseTelegram:      v.GetBool("use_telegram"),
		TelegramBotToken: v.GetString("telegram_bot_token"),
		TelegramChatID:   v.GetString("telegram_chat_id"),
		ListenCommands:   v.GetBool("listen_commands"),

		EmailAddress:  v.GetString("email_address"),
		EmailPassword: v.GetString("email_password"),
		SMTPHost:      v.GetString("smtp_host"),
		SMTPPort:      v.GetInt("smtp_port"),

		AmadeusURL:          v.GetString("amadeus_url"),
		AmadeusClientId:     v.GetString("amadeus_clientid"),
		AmadeusClientSecret: v.GetString("amadeus_clientsecret"),

		SearchTimeout: v.GetDuration("search_timeout"),
		CheckInterval: v.GetDuration("check_interval"),
		HistoryDir:    v.GetString("history_dir"),

		HTTPAddr:  v.GetString("http_addr"),
		JWTSecret: v.GetString("jwt_secret"),
		JWTUser:   v.GetString("auth_user"),
		JWTPass:   v.GetString("auth_pass"),
	}
}

func splitSources(csv string) []string {
	var out []string
	for _, s := range strings.Split(csv, ",") {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SourceEnabled reports whether a source name appears in the enabled list.
func (c *Config) SourceEnabled(name string) bool {
	for _, s := range c.EnabledSources {
		if s == name {
			return true
		}
	}
	return false
}

// Validate checks that every setting the selected notification channel and the
// enabled sources need is present. Values are not range-checked; a run must
// abort before any network activity when something is missing.
func (c *Config) Validate() error {
	var missing []string

	if c.UseTelegram {
		if c.TelegramBotToken == "" {
			missing = append(missing, "telegram_bot_token")
		}
		if c.TelegramChatID == "" {
			missing = append(missing, "telegram_chat_id")
		}
	} else {
		if c.EmailAddress == "" {
			missing = append(missing, "email_address")
		}
		if c.EmailPassword == "" {
			missing = append(missing, "email_password")
		}
	}

	if c.SourceEnabled("amadeus") {
		if c.AmadeusClientId == "" {
			missing = append(missing, "amadeus_clientid")
		}
		if c.AmadeusClientSecret == "" {
			missing = append(missing, "amadeus_clientsecret")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}
