package constants

// Queries are written with ? placeholders and rebound per driver.
const (
	RecentSearchesByView = `
SELECT id, view_id, query, flight_matches, airport_matches, created_at
FROM search_history
WHERE view_id = ?
ORDER BY created_at DESC
LIMIT ?`

	RecentChatsByView = `
SELECT id, view_id, message, reply, failed, created_at
FROM chat_queries
WHERE view_id = ?
ORDER BY created_at DESC
LIMIT ?`
)
