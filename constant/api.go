package constant

// Backend routes. Path parameters are appended by the api package.
const (
	RouteProfile       = "/api/getProfile"
	RouteUpdateProfile = "/api/updateProfile"
	RouteGenreName     = "/api/getGenreName"
	RouteGenreCount    = "/api/getGenresCnt"
	RouteAnimesByGenre = "/api/getAnimesByGenre"
	RouteAnimes        = "/api/getAnimes"
)

// Messages the backend sends with 401 responses.
const (
	MsgTokenExpired = "Token expired"
	MsgTokenInvalid = "Token is invalid"
)

// ItemsPerPage is the fixed page size of genre listings.
const ItemsPerPage = 48
