// Package mcq decodes multiple-choice quizzes returned by the backend.
//
// Quizzes arrive either as structured items or as a plain-text transcript:
//
//	1. What is 2+2?
//	A) 3
//	B) 4
//	Correct answer: B
//
// Parse reads a transcript in a single forward pass driven by a four-state
// machine (no question, in question, in options, after answer). Lines that do
// not fit the current state are skipped rather than reported, so noisy
// generator output still yields every well-formed question.
package mcq
