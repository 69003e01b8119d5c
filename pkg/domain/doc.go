// Package domain contains the core domain entities shared across the
// application. These types describe ingredient label analyses and are kept
// free of transport and infrastructure concerns.
package domain
