package config

type Config struct {
	Telegram Telegram
	Store    Store
	Sheets   Sheets

	// Owner may request other users' year reports
	Owner string `env:"OWNER_USERNAME"`
}

type Telegram struct {
	Token   string `env:"TG_TOKEN"`
	Timeout int    `env:"TIMEOUT" envDefault:"60"`
}

type Store struct {
	// sheets, sqlite or memory
	Backend    string `env:"STORE_BACKEND" envDefault:"sheets"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/records.db"`
}

type Sheets struct {
	CredentialsFile string `env:"GOOGLE_SERVICE_ACCOUNT_FILE" envDefault:"service_account.json"`
	SpreadsheetID   string `env:"GOOGLE_SPREADSHEET_ID"`
	SheetName       string `env:"GOOGLE_SHEET_NAME" envDefault:"Sheet1"`
}
