// Package schema has the models, defaults and policy constants for all parts of aiready.
package schema
