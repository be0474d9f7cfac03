package keywords

// DefaultVersion identifies the built-in table set.
const DefaultVersion = "builtin-1"

// Default returns a fresh copy of the built-in tables. The taxonomies keep
// their definition order, which is the classification tie-break order.
func Default() *Tables {
	t := &Tables{
		Version: DefaultVersion,
		Themes: Taxonomy{
			{Name: "Anxiety", Keywords: []string{
				"anxious", "anxiety", "nervous", "worry", "worried", "panic", "fear", "scared",
				"overthinking", "stress", "stressed",
			}},
			{Name: "Depression", Keywords: []string{
				"depressed", "depression", "sad", "hopeless", "empty", "numb", "unhappy", "miserable",
				"worthless", "tired", "exhausted", "no motivation", "no energy",
			}},
			{Name: "Stress", Keywords: []string{
				"stressed", "overwhelmed", "burnout", "burned out", "pressure", "workload", "overworked",
				"deadline", "too much", "exhausted", "stress",
			}},
			{Name: "Loneliness", Keywords: []string{
				"lonely", "alone", "isolated", "no friends", "no one to talk to", "abandoned",
				"disconnected", "solitude", "by myself",
			}},
		},
		Moods: Taxonomy{
			{Name: "Happy", Keywords: []string{
				"happy", "joy", "glad", "great", "good", "excellent", "amazing", "wonderful", "fantastic",
				"excited", "positive", "blessed",
			}},
			{Name: "Sad", Keywords: []string{
				"sad", "down", "blue", "upset", "unhappy", "heartbroken", "disappointed", "depressed",
				"miserable", "gloomy",
			}},
			{Name: "Angry", Keywords: []string{
				"angry", "mad", "frustrated", "annoyed", "irritated", "furious", "rage", "upset",
				"outraged", "bitter",
			}},
			{Name: "Anxious", Keywords: []string{
				"anxious", "nervous", "tense", "worried", "scared", "fearful", "panic", "uneasy",
				"restless", "apprehensive",
			}},
			{Name: "Relaxed", Keywords: []string{
				"relaxed", "calm", "peaceful", "chilled", "serene", "tranquil", "content", "composed",
				"mellow",
			}},
			{Name: "Confused", Keywords: []string{
				"confused", "unsure", "uncertain", "puzzled", "lost", "perplexed", "bewildered",
				"disoriented", "don't know",
			}},
			{Name: "Overwhelmed", Keywords: []string{
				"overwhelmed", "stressed", "swamped", "burdened", "overloaded", "struggling", "too much",
				"can't handle",
			}},
		},
		ThemeThreshold: 3,
		MoodThreshold:  2,

		Intensifiers:  []string{"very", "really", "extremely", "so", "too", "much", "always", "never"},
		UrgentPhrases: []string{"can't take it", "can't handle", "need help", "hopeless", "giving up"},

		Acknowledgments: []string{
			"I hear you, and what you're feeling is valid. ",
			"Thank you for sharing that with me. ",
			"I appreciate you opening up about this. ",
			"It takes courage to express these feelings. ",
			"I'm here to listen and support you. ",
		},

		Templates: map[string]map[Severity][]string{
			"Anxiety": {
				Mild: {
					"I notice a bit of anxiety in your message. Have you tried taking a few deep breaths? It's a simple but effective way to calm your mind.",
					"Sometimes anxiety can creep up on us. Would you like to explore what might be triggering these feelings?",
					"A touch of anxiety is perfectly normal. Let's work through this together - what helps you feel grounded?",
				},
				Moderate: {
					"I can hear the anxiety in your words. Remember that you've handled anxious moments before, and you can handle this too.",
					"Anxiety can feel overwhelming, but you're not alone in this. What specific worries are on your mind right now?",
					"When anxiety builds up, it's important to take care of yourself. Have you tried any relaxation techniques today?",
				},
				Severe: {
					"I hear how intense your anxiety is right now. If you're comfortable, let's break down what's happening step by step.",
					"This sounds really challenging. Have you considered reaching out to a mental health professional? They can provide specialized support for managing anxiety.",
					"When anxiety is this strong, sometimes we need to focus on just the next few minutes. What's one small thing we could do right now to help you feel a bit safer?",
				},
			},
			"Depression": {
				Mild: {
					"I'm noticing some down feelings in your message. What's been on your mind lately?",
					"Even small steps count on harder days. What's one tiny thing you could do for yourself today?",
					"It's okay to have low moments. Would you like to talk about what might help lift your spirits?",
				},
				Moderate: {
					"I hear how difficult things have been. Depression can make everything feel harder, but you're not alone in this.",
					"Your feelings are valid, and it's brave of you to share them. What kind of support would be most helpful right now?",
					"Sometimes depression can cloud our view of things. Can we explore what might bring a small ray of light to your day?",
				},
				Severe: {
					"I'm really concerned about how you're feeling. Have you considered talking to a mental health professional? They're trained to help with these intense feelings.",
					"You don't have to carry this heavy burden alone. Would you feel comfortable reaching out to someone you trust today?",
					"When things feel this dark, please remember that help is available. Would you like information about crisis support services?",
				},
			},
		},

		MoodEnergy: map[string]Energy{
			"Happy":    EnergyHigh,
			"Excited":  EnergyHigh,
			"Angry":    EnergyHigh,
			"Relaxed":  EnergyModerate,
			"Confused": EnergyModerate,
		},
		DefaultEnergy:  EnergyLow,
		ActivityLeadIn: "Here's a suggestion: ",
		Activities: map[Energy][]string{
			EnergyLow: {
				"Take a gentle 5-minute stretch break",
				"Listen to a calming playlist",
				"Write down three things you can see, hear, and feel right now",
				"Take a few slow, deep breaths",
				"Drink a glass of water mindfully",
			},
			EnergyModerate: {
				"Go for a short walk outside",
				"Do a quick tidying task",
				"Call or message a friend",
				"Try a simple breathing exercise",
				"Write in a journal for 10 minutes",
			},
			EnergyHigh: {
				"Try a workout or dance session",
				"Tackle a project you've been putting off",
				"Organize a space in your home",
				"Practice a hobby you enjoy",
				"Connect with friends or family",
			},
		},

		FollowUps: map[FollowUpKind][]string{
			FollowUpGeneral: {
				"How long have you been feeling this way?",
				"What has helped you cope with similar feelings in the past?",
				"Would you like to explore these feelings a bit more?",
				"On a scale of 1-10, how intense would you say these feelings are right now?",
				"Have you noticed any patterns in when these feelings come up?",
			},
			FollowUpProgress: {
				"How does this compare to how you were feeling yesterday?",
				"What's one small positive change you've noticed recently?",
				"What strategies have you found most helpful so far?",
				"Would you like to set a small goal for tomorrow?",
			},
			FollowUpSupport: {
				"Who in your life knows about what you're going through?",
				"What kind of support would be most helpful right now?",
				"Have you considered talking to a mental health professional about this?",
				"What resources or tools would help you feel more supported?",
			},
		},

		Recommendations: Recommendations{
			Empty:       "Continue chatting to receive personalized recommendations based on your mood patterns.",
			Intro:       "Based on your conversations this week, here are some suggestions: ",
			Outro:       "Remember that small, consistent steps often lead to the most meaningful changes in how we feel.",
			DefaultMood: "Focus on regular sleep, nutrition, exercise, and social connection - all proven foundations for mental wellbeing. ",
			Moods: map[string]string{
				"Anxious":     "Try deep breathing exercises daily (4-7-8 technique) and consider limiting caffeine. ",
				"Sad":         "Schedule time for activities you enjoy, even briefly. Morning sunlight exposure can help. ",
				"Angry":       "When anger arises, try counting to 10 before responding. Physical activity can be a great outlet. ",
				"Stressed":    "Break large tasks into smaller, manageable steps. Consider a 10-minute daily meditation. ",
				"Overwhelmed": "Break large tasks into smaller, manageable steps. Consider a 10-minute daily meditation. ",
				"Happy":       "Wonderful! Note what's working well in your journal to reference during more difficult times. ",
				"Excited":     "Wonderful! Note what's working well in your journal to reference during more difficult times. ",
			},
			Themes: map[string]string{
				"Anxiety":    "Consider mindfulness meditation apps or the DARE technique when anxiety peaks. ",
				"Depression": "Even small achievements deserve celebration. Set one tiny goal each morning. ",
				"Stress":     "Review your boundaries and practice saying 'no' to preserve your energy for priorities. ",
				"Burnout":    "Review your boundaries and practice saying 'no' to preserve your energy for priorities. ",
				"Loneliness": "Reach out to one person this week, even briefly. Consider volunteering or group activities aligned with your interests. ",
			},
		},
	}
	return t.Normalize()
}
