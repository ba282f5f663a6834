package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixTrackedFlight CachePrefix = "TRACK_"
	CachePrefixWeather       CachePrefix = "WEATHER_"
	CachePrefixRevokedToken  CachePrefix = "REVOKED_TOKEN_"
)
