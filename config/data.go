package config

import "time"

// Data is the actual configuration data for the app
type Data struct {
	CreatedAt time.Time `json:"created_at"`
	LoadedAt  time.Time `json:"-"`
	Version   int64     `json:"version" jsonschema:"minimum=1,maximum=1"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Log       struct {
		Level    string   `json:"level" enums:"debug,info,warn,error,silent" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,enum=silent"`
		Topics   []string `json:"topics"`
		MaxLines int      `json:"max_lines"`
	} `json:"log"`
	API struct {
		Access struct {
			Allow []string `json:"allow"`
			Block []string `json:"block"`
		} `json:"access"`
		TrustedProxies []string `json:"trusted_proxies"`
		ConnectRate    float64  `json:"connect_rate"`
		ConnectBurst   int      `json:"connect_burst"`
	} `json:"api"`
	Storage struct {
		Page string `json:"page"`
		CORS struct {
			Origins []string `json:"origins"`
		} `json:"cors"`
		Compression []string `json:"compression"`
	} `json:"storage"`
	Aura struct {
		BaseLoad    float64 `json:"base_load"`
		Fluctuation float64 `json:"fluctuation"`
		Seed        int64   `json:"seed"`
	} `json:"aura"`
	Metrics struct {
		EnablePrometheus bool  `json:"enable_prometheus"`
		Window           int64 `json:"window_sec"` // seconds
	} `json:"metrics"`
	Debug struct {
		Profiling    bool   `json:"profiling"`
		AutoMaxProcs bool   `json:"auto_max_procs"`
		AgentAddress string `json:"agent_address"`
	} `json:"debug"`
}
