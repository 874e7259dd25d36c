// Package services contains stateless domain services that operate across
// aggregates. The cost calculator prices ledger actions from product
// geometry and the cost-model configuration.
package services
