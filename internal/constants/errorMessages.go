package constants

const (
	MsgViewNotFound        = "View not found or already unmounted"
	MsgFlightNotFound      = "Flight not present in the latest poll"
	MsgUnknownKind         = "Unknown entity kind, expected airports or flights"
	MsgMissingMessage      = "Message cannot be empty"
	MsgMissingPassword     = "Password cannot be empty"
	MsgUnauthorizedView    = "Unauthorized: missing or invalid view token"
	MsgInvalidBody         = "Invalid request body"
	MsgInvalidSeverity     = "Severity must be green, yellow or red"
	MsgSearchQueryTooShort = "Search query must be at least 2 characters"
)

const (
	ChatNoSelectionContext = "User is looking at the main map. No specific flight selected."
	ChatEmptyReply         = "I'm having trouble reaching the control tower."
	ChatConnectionError    = "⚠️ **Connection Error:** I can't reach the server right now. Please try again shortly."
	ChatGreeting           = "👋 **Captain here!**\n\nI see what you see. Ask me about:\n- The selected flight status\n- Aviation terms (e.g., \"What is Zulu time?\")\n\nReady for takeoff?"
)
