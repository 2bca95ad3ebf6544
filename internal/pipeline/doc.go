// Package pipeline implements the staged transformation of a LaTeX-subset
// source into renderable HTML.
//
// Each stage is a pure text-to-text rewrite over the accumulated body; the
// orchestrator in the root package sequences them in a fixed, documented
// order. Stages never fail: malformed fragments degrade to inline markers or
// literal fallbacks so the rest of the document still renders.
package pipeline
