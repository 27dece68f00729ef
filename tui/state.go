package tui

type state int

const (
	loadingState state = iota
	errorState
	genreState
	searchState
	pageInputState
	sortState
	modalState
	loginState
	profileState
)
