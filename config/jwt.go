package config

type Jwt struct {
	Secret string `json:"secret" yaml:"secret"`
}
