package country

// cityCountry is one entry of the curated lookup below.
type cityCountry struct {
	city    string
	country string
}

// cityToCountry is the curated city/region lookup for names that are
// ambiguous, informal, or that geocoders routinely mangle ("Greater
// Tampa Bay", "Washington DC-Baltimore"). Checked before any external
// call. Keys are lowercase and matched by substring against the cleaned
// location string, scanned top to bottom so the first entry wins; keep
// compound names like "utica-rome" above the shorter names they contain.
var cityToCountry = []cityCountry{
	{"new york", "United States"},
	{"san francisco", "United States"},
	{"san francisco bay", "United States"},
	{"bay area", "United States"},
	{"washington dc", "United States"},
	{"washington dc-baltimore", "United States"},
	{"dallas-fort worth", "United States"},
	{"utica-rome", "United States"},
	{"columbus, ohio", "United States"},
	{"austin, texas", "United States"},
	{"greater chicago", "United States"},
	{"greater st. louis", "United States"},
	{"greater tampa bay", "United States"},
	{"greater minneapolis-st. paul", "United States"},
	{"salt lake", "United States"},
	{"charlotte", "United States"},
	{"kansas", "United States"},
	{"des moines", "United States"},
	{"chicago", "United States"},
	{"st. louis", "United States"},
	{"tampa", "United States"},
	{"utah", "United States"},
	{"dallas", "United States"},
	{"fort worth", "United States"},
	{"baltimore", "United States"},
	{"minneapolis", "United States"},
	{"st. paul", "United States"},
	{"los angeles", "United States"},
	{"boston", "United States"},
	{"seattle", "United States"},
	{"greater paris", "France"},
	{"paris", "France"},
	{"porto", "Portugal"},
	{"lisbon", "Portugal"},
	{"mumbai", "India"},
	{"greater kolkata", "India"},
	{"kolkata", "India"},
	{"bengaluru", "India"},
	{"greater bengaluru", "India"},
	{"delhi", "India"},
	{"bangkok", "Thailand"},
	{"jakarta", "Indonesia"},
	{"greater istanbul", "Turkey"},
	{"istanbul", "Turkey"},
	{"greater coventry", "United Kingdom"},
	{"coventry", "United Kingdom"},
	{"london", "United Kingdom"},
	{"manchester", "United Kingdom"},
	{"hongkou", "China"},
	{"beijing", "China"},
	{"shanghai", "China"},
	{"kuala lumpur", "Malaysia"},
	{"mexico city", "Mexico"},
	{"mexico", "Mexico"},
	{"rio de janeiro", "Brazil"},
	{"greater rio de janeiro", "Brazil"},
	{"campinas", "Brazil"},
	{"brazil", "Brazil"},
	{"são paulo", "Brazil"},
	{"calgary", "Canada"},
	{"canada", "Canada"},
	{"toronto", "Canada"},
	{"vancouver", "Canada"},
	{"rome", "Italy"},
	{"madrid", "Spain"},
	{"barcelona", "Spain"},
	{"berlin", "Germany"},
	{"munich", "Germany"},
	{"sydney", "Australia"},
	{"melbourne", "Australia"},
	{"nasr", "Egypt"},
}
