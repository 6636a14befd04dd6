package investorfeatures

// NicknameMappings is the fixed 63-entry table used only to compute the
// has_nickname flag — it is never consulted by the local-part renderer.
// Keys and values are lowercase first names.
var NicknameMappings = map[string][]string{
	"alexander": {"alex"},
	"alex":      {"alexander"},
	"andrew":    {"andy"},
	"andy":      {"andrew"},
	"anne":      {"annie", "nancy"},
	"annie":     {"anne"},
	"nancy":     {"anne"},
	"william":   {"bill", "will"},
	"bill":      {"william"},
	"will":      {"william"},
	"robert":    {"bob", "bobby", "rob"},
	"bob":       {"robert"},
	"bobby":     {"robert"},
	"rob":       {"robert"},
	"richard":   {"rick", "dick"},
	"rick":      {"richard"},
	"dick":      {"richard"},
	"james":     {"jim", "jimmy", "jamie"},
	"jim":       {"james"},
	"jimmy":     {"james"},
	"jamie":     {"james"},
	"john":      {"jack", "johnny"},
	"jack":      {"john"},
	"johnny":    {"john"},
	"joseph":    {"joe", "joey"},
	"joe":       {"joseph"},
	"joey":      {"joseph"},
	"michael":   {"mike", "mikey"},
	"mike":      {"michael"},
	"mikey":     {"michael"},
	"elizabeth": {"liz", "beth", "betty", "eliza"},
	"liz":       {"elizabeth"},
	"beth":      {"elizabeth"},
	"betty":     {"elizabeth"},
	"eliza":     {"elizabeth"},
	"margaret":  {"maggie", "meg", "peggy"},
	"maggie":    {"margaret"},
	"meg":       {"margaret"},
	"peggy":     {"margaret"},
	"katherine": {"kate", "katie", "kathy"},
	"kate":      {"katherine"},
	"katie":     {"katherine"},
	"kathy":     {"katherine"},
	"patricia":  {"pat", "patty", "trish"},
	"pat":       {"patricia"},
	"patty":     {"patricia"},
	"trish":     {"patricia"},
	"thomas":    {"tom", "tommy"},
	"tom":       {"thomas"},
	"tommy":     {"thomas"},
	"charles":   {"chuck", "charlie"},
	"chuck":     {"charles"},
	"charlie":   {"charles"},
	"daniel":    {"dan", "danny"},
	"dan":       {"daniel"},
	"danny":     {"daniel"},
	"edward":    {"ed", "eddie", "ted"},
	"ed":        {"edward"},
	"eddie":     {"edward"},
	"ted":       {"edward"},
	"benjamin":  {"ben", "benny"},
	"ben":       {"benjamin"},
	"benny":     {"benjamin"},
}
