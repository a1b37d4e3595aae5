package chat

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule maps input substrings to one canned reply. Substrings must be
// lowercase; matching is done against the lowercased input.
type Rule struct {
	Contains []string `yaml:"contains"`
	Reply    string   `yaml:"reply"`
}

type rulesFile struct {
	Rules     []Rule   `yaml:"rules"`
	Fallbacks []string `yaml:"fallbacks"`
}

// DefaultRules are the built-in canned responses, checked in order.
func DefaultRules() []Rule {
	return []Rule{
		{Contains: []string{"hello", "hi ", "hey"}, Reply: "Hi there! I can help you get around newsdeck. Ask me about the feed, saving articles, or your interests."},
		{Contains: []string{"save", "bookmark"}, Reply: "Press 's' on any article in the feed to save it. Saved articles live under the Saved tab."},
		{Contains: []string{"interest", "topic", "categor"}, Reply: "Your feed is personalized by your interests. Open Profile and toggle categories to tune it."},
		{Contains: []string{"search", "filter", "find"}, Reply: "Press '/' on the feed to search. You can combine a search term with category filters."},
		{Contains: []string{"trending", "popular"}, Reply: "The Trending tab shows what's hot right now: top categories, sources, and tags across all readers."},
		{Contains: []string{"password", "login", "sign in"}, Reply: "If you can't sign in, double-check your email and password. Sessions expire after a while, so you may just need to log in again."},
		{Contains: []string{"logout", "sign out"}, Reply: "Press 'q' from any page to open the menu, then choose Logout. Your saved articles stay on the server."},
		{Contains: []string{"thank"}, Reply: "You're welcome! Happy reading."},
		{Contains: []string{"bye", "goodbye"}, Reply: "See you around!"},
	}
}

// DefaultFallbacks are used when no rule matches.
func DefaultFallbacks() []string {
	return []string{
		"I'm not sure about that one. Try asking about the feed, saved articles, or trending topics.",
		"Hmm, that's beyond me. I know about searching, saving, and your interests.",
		"Could you rephrase that? I'm just a simple help bot.",
		"Not sure I follow. Ask me how to save an article or tune your feed.",
	}
}

// LoadRules reads a YAML rules file. Substrings are lowercased on load
// so rule authors don't have to care about case.
func LoadRules(path string) ([]Rule, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read chat rules: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse chat rules: %w", err)
	}

	for i := range file.Rules {
		for j, needle := range file.Rules[i].Contains {
			file.Rules[i].Contains[j] = strings.ToLower(needle)
		}
	}
	return file.Rules, file.Fallbacks, nil
}
