package ai

// QueryPrompt frames the grounding context as a system prompt for answer
// generation. The single verb "ONLY" is the guard against answers that are
// not backed by the graph.
const QueryPrompt = `You are a helpful assistant answering questions based on a knowledge graph.
Use ONLY the provided context to answer. Be concise and direct.
If the context doesn't contain enough information, say so.

Context from knowledge graph:
%s`
