package models

// Fixed texts rendered to the user. Failures are always collapsed into one
// of these notices; raw error detail goes to the diagnostics log only.
const (
	IntroMessage = "Hi! I'm an AI assistant trained on Saras AI documentation, " +
		"help articles, and other content. Ask me anything about Saras AI."

	NoMatchNotice = "I'm sorry, I couldn't find a relevant answer to your question."

	ErrorNotice = "I'm sorry, there was an error processing your request."
)

// MaxDisplayedMatches caps how many ranked matches one assistant answer
// renders. Citation indexes are 0-based ranks within this window.
const MaxDisplayedMatches = 3

// DefaultSearchURL is the search service endpoint used when no
// configuration exists.
const DefaultSearchURL = "http://localhost:8000/search"
