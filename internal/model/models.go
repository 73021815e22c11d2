package model

// Models lists every table in migration order; parents before children.
func Models() []interface{} {
	return []interface{}{
		&ChatSession{},
		&ChatMessage{},
	}
}
