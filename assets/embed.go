package assets

import _ "embed"

// TrendDocument embeds the screen-device document rendered alongside
// summaries. The datasource is bound at response time.
//
//go:embed apl_trend.json
var TrendDocument []byte
