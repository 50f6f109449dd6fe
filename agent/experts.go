package agent

import (
	"google.golang.org/genai"
)

func instruction(s string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: s}}}
}

func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			You lead a review of the user's options trading journal.

			The experts available as Tools are dedicated to you and keep the context of your previous questions.
			Devise a plan of questions to ask each of them, then answer the user's request.

			Always ground figures in the Analyst's answers, never make up a P&L.
			When the user asks for advice, confront the Coach's opinion with the journal's figures.
			`),
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns the expert reading the journal.
func NewAnalyst(model string, j *Journal) *Expert {
	lib := j.Functions()
	return &Expert{
		Name: "Analyst",
		Description: `The Analyst reads the user's trade journal. Ask the Analyst about closed trades,
		realized and open P&L, positions and statistics, optionally for a single symbol.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are the analyst of an options trading journal.
			Use the Tools to answer questions about closed trades, open lots, positions and statistics.
			Premiums are per share, one contract is 100 shares.
			A premium shown as "?" is unknown and counted as zero.
			`),
		},
		Library: NewLibrary(lib),
	}
}

// NewCoach returns an expert on options trading, grounded by Google Search.
func NewCoach(model string) *Expert {
	return &Expert{
		Name: "Coach",
		Description: `The Coach is an experienced options trader. Ask the Coach to comment on strategies,
		risk management, or recent news about an underlying.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are an options trading coach. You know long and short calls and puts, their risks and how to size them.
			Use Google Search to ground statements about markets or companies.
			Be direct about mistakes, the user keeps this journal to improve.
			`),
		},
	}
}
