package models

// ConnectionMode selects which routing hint the operator intends to use. It is
// informational; push sync always targets ServerURL.
type ConnectionMode string

const (
	ConnectionLAN ConnectionMode = "LAN"
	ConnectionVPN ConnectionMode = "VPN"
)

// IsValid reports whether the value is a known connection mode.
func (m ConnectionMode) IsValid() bool {
	return m == ConnectionLAN || m == ConnectionVPN
}

// SystemConfig is the persisted network and sync configuration. It lives beside
// the schema snapshot in the durable store, not in the process environment.
type SystemConfig struct {
	ServerURL         string         `json:"serverUrl"`
	LANPath           string         `json:"lanPath"`
	VPNPath           string         `json:"vpnPath"`
	IsCloudEnabled    bool           `json:"isCloudEnabled"`
	IsAutoSyncEnabled bool           `json:"isAutoSyncEnabled"`
	ConnectionMode    ConnectionMode `json:"connectionMode"`
	RememberServerURL bool           `json:"rememberServerUrl"`
}

// DefaultSystemConfig is the configuration used when nothing has been persisted yet.
func DefaultSystemConfig() SystemConfig {
	return SystemConfig{
		ConnectionMode:    ConnectionLAN,
		RememberServerURL: true,
	}
}
