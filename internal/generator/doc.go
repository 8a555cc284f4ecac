// Package generator sends a prompt to a remote text-generation endpoint and
// returns the generated text.
//
// The wire format is the messages request used by Anthropic models, both on
// the public API and behind AWS Bedrock's invoke endpoint:
//
//	{"anthropic_version": "...", "max_tokens": 4000,
//	 "messages": [{"role": "user", "content": "<prompt>"}]}
//
// The reply's content parts of type "text" are concatenated in order.
package generator
