package constant

// AuditTopic is the in-process pub/sub topic carrying access decision events
// from the request path to the audit consumer.
const AuditTopic = "audit.decisions"

// AnswerPrompt frames retrieved context for grounded answering. The model is
// told to refuse rather than guess when the context does not cover the
// question, because the context is already access-filtered per caller.
const AnswerPrompt = `You are a company knowledge assistant. Answer the question using ONLY the context below.
If the context does not contain the answer, say you could not find it in the documents available to the user. Do not invent facts.

Context:
%s

Question: %s

Answer:`

// NoAccessibleContextAnswer is returned without calling the model when the
// filtered retrieval produced nothing for this caller.
const NoAccessibleContextAnswer = "I couldn't find anything relevant in the documents you have access to."

// AskTopK bounds how many chunks feed the answer prompt.
const AskTopK = 5
