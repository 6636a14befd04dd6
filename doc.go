// Package emailguess predicts the most likely work email addresses for an
// investor at a firm, by resolving the firm's domain, decomposing the
// investor's name, scoring a fixed set of candidate local-part templates
// with a boosted-tree model, and rendering the top-scoring ones.
//
// Construct an Engine with New and call Predict per query; everything in
// this package is safe for concurrent use once constructed.
package emailguess
