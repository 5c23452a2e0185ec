// Package formulas holds the pure numerical building blocks of the projection engine:
// covariance construction, a semi-definite tolerant Cholesky factorization, a
// Box-Muller Gaussian sampler over an injectable uniform source, and the order
// statistics used to summarise simulated distributions.
package formulas
