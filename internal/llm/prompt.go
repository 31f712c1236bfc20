package llm

import "fmt"

const contextSeparator = "\n\n---\n\n"

const structuredQuerySystem = "You are a helpful assistant that extracts structured queries from natural language questions."

func structuredQueryPrompt(question string) string {
	return fmt.Sprintf(`Analyze the following question and extract the key concepts, entities, and relationships.
Format your response as a concise search query that captures the essence of the question.

Question: %s

Structured Query:`, question)
}

const answerSystem = "You are a helpful assistant that answers questions based on the provided context."

func answerPrompt(question, context string) string {
	return fmt.Sprintf(`Analyze the following question and context, and provide a concise, accurate answer.
If the answer cannot be found in the context, state that clearly.

Question: %s

Context:
%s

Answer:`, question, context)
}

const evaluationSystem = "You are a helpful assistant that evaluates the logic of queries against provided context."

func evaluationPrompt(question, context string) string {
	return fmt.Sprintf(`Analyze the following question and context, and provide a structured evaluation.

Question: %s

Context:
%s

Evaluation (in JSON format):
{
    "relevant_clauses": ["List of relevant clauses found in the context"],
    "decision": "yes/no/partial",
    "confidence": 0.0 to 1.0,
    "reasoning": "Explanation of the decision",
    "conditions": ["List of conditions if applicable"],
    "references": ["List of specific references to the context"]
}`, question, context)
}
