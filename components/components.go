// Package components defines the ECS components for grid entities.
package components
