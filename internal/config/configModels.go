package config

type Config struct {
	Env            string       `yaml:"env" env-default:"local"`
	BotConfig      BotConfig    `yaml:"bot" env-required:"true"`
	ExportConfig   ExportConfig `yaml:"export"`
	ConfigFilePath string       `yaml:"configFilePath" env:"CONFIG_FILEPATH" env-default:""`
	ConfigFileName string       `yaml:"configFileName" env:"CONFIG_FILENAME" env-default:""`
}

type BotConfig struct {
	TgbotApiToken string `yaml:"tgbot_apitoken" env:"TGBOT_APITOKEN" env-required:"true"`
}

type ExportConfig struct {
	FontPath     string `yaml:"fontPath" env:"EXPORT_FONT_PATH" env-default:"assets/Vazirmatn-Regular.ttf"`
	TemplatePath string `yaml:"templatePath" env:"EXPORT_TEMPLATE_PATH" env-default:"assets/form_template.jpg"`
}
