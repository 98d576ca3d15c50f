package utils

import "strings"

// ChunkText groups whole sentences into pieces of at most maxSize bytes. A
// single sentence longer than maxSize becomes its own chunk.
func ChunkText(text string, maxSize int) []string {
	var (
		chunks  []string
		current []string
		size    int
	)
	for _, s := range SplitSentences(text) {
		if size+len(s) > maxSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current, size = nil, 0
		}
		current = append(current, s)
		size += len(s) + 1
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}
