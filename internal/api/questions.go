package api

import "math/rand"

// iceBreakerQuestions is the pool of prompts shown to speakers.
var iceBreakerQuestions = []string{
	"Tell us about a hobby you're passionate about.",
	"What's a skill you'd like to learn in the next year?",
	"Share a memorable travel experience you've had.",
	"If you could have dinner with any historical figure, who would it be and why?",
	"What's your favorite book or movie and why does it resonate with you?",
	"Tell us about a challenge you've overcome and what you learned from it.",
	"What's something most people don't know about you?",
	"If you could live anywhere in the world, where would it be?",
	"Share a personal goal you're currently working towards.",
	"What's the best advice someone has given you?",
	"Tell us about someone who has influenced your life significantly.",
	"What's a cause or issue you feel strongly about?",
	"Share a proud accomplishment from your life.",
	"If you had a time machine, which era would you visit?",
	"What's something you're looking forward to in the near future?",
	"Tell us about your ideal weekend.",
	"What's a lesson you've learned from a mistake?",
	"Share a tradition (family, cultural, personal) that's important to you.",
	"What's a quality you appreciate most in other people?",
	"If you could instantly master any skill, what would it be?",
}

func randomQuestion() string {
	return iceBreakerQuestions[rand.Intn(len(iceBreakerQuestions))]
}
