// Package llm provides LLM client implementations.
//
// The factory creates LLM clients based on provider configuration.
// Currently supports:
//   - Anthropic Claude
//
// The script writing stage talks to the Client interface only, so a provider
// swap is a factory change.
package llm
