// Package cga implements the conformal geometric algebra used by the
// hypershape kernel.
//
// An N-dimensional Euclidean space is embedded in an (N+2)-dimensional
// algebra with two extra basis vectors: e₋ (squaring to -1) and e₊
// (squaring to +1). The null vectors NO (origin) and NI (infinity) are
// built from them. Points, hyperplanes and hyperspheres are all 1-blades
// in the inner product null space (IPNS); their duals in the outer
// product null space (OPNS) are the manifold encodings stored by the
// kernel.
//
// All predicates compare against a single fixed tolerance, Epsilon.
package cga
