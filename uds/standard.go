package uds

// StandardVersion identifies a revision year of ISO 14229. It only selects
// which record shape a service uses; it never drives any other behaviour.
type StandardVersion int

const (
	StandardPre2006 StandardVersion = iota
	Standard2006
	Standard2013
	Standard2020
)

// LatestStandard returns the most recent supported revision.
func LatestStandard() StandardVersion {
	return Standard2020
}

func (v StandardVersion) String() string {
	switch v {
	case StandardPre2006:
		return "pre-2006"
	case Standard2006:
		return "2006"
	case Standard2013:
		return "2013"
	case Standard2020:
		return "2020"
	}
	return "unknown"
}
