package rule

// Seed returns the default "start a business" rule table.
func Seed() Table {
	t := Table{
		Greeting: Reply{
			Text: "Namaste! Let's bring your dream to life 🌟\n\nI'm here to help you start your perfect business. Tell me, what kind of products interest you the most?",
			Suggestions: []string{
				"Fashion & Clothing",
				"Beauty & Skincare",
				"Homemade Snacks",
				"Handmade Crafts",
				"Digital Services",
			},
		},
		Rules: []Rule{
			{
				ID:       "fashion",
				Keywords: []string{"fashion", "clothing"},
				Response: "Wonderful choice! Fashion is always in demand 👗\n\n" +
					"Here are some trending, eco-friendly fashion ideas perfect for the Indian market:\n\n" +
					"🌿 Sustainable cotton wear\n👘 Indo-western fusion clothing\n🧣 Handwoven accessories\n♻️ Upcycled vintage pieces\n🌺 Regional embroidered items\n\n" +
					"Which of these resonates with you? Or would you like to explore a specific regional style?",
				Suggestions: []string{"Sustainable Cotton", "Indo-Western Fusion", "Handwoven Accessories", "Tell me more about regional styles"},
			},
			{
				ID:       "beauty",
				Keywords: []string{"beauty", "skincare"},
				Response: "Beautiful! The beauty industry is booming in India 💄✨\n\n" +
					"Here are some trending, natural beauty ideas:\n\n" +
					"🌿 Ayurvedic skincare products\n🥥 Homemade organic cosmetics\n🌸 Traditional beauty remedies\n🧴 Herbal hair care solutions\n💆‍♀️ DIY beauty kits\n\n" +
					"What type of beauty products excite you most? Natural ingredients are very popular right now!",
				Suggestions: []string{"Ayurvedic Skincare", "Organic Cosmetics", "Herbal Hair Care", "DIY Beauty Kits"},
			},
			{
				ID:       "food",
				Keywords: []string{"snack", "food"},
				Response: "Delicious choice! Food business is always profitable 🍪\n\n" +
					"Here are some popular snack ideas that sell well:\n\n" +
					"🥜 Healthy roasted nuts & seeds\n🍪 Traditional homemade sweets\n🌶️ Spicy regional namkeens\n🥤 Natural fruit drinks\n🍯 Organic honey products\n\n" +
					"Food businesses start small and can grow big! Which type of snacks would you love to make?",
				Suggestions: []string{"Healthy Nuts & Seeds", "Traditional Sweets", "Regional Namkeens", "Natural Drinks"},
			},
			{
				ID:       "crafts",
				Keywords: []string{"craft", "handmade"},
				Response: "How creative! Handmade products have a special charm 🎨\n\n" +
					"Here are some craft ideas that are in high demand:\n\n" +
					"🪔 Decorative diyas & candles\n🎁 Personalized gift items\n🧸 Handmade toys & dolls\n🏺 Traditional pottery items\n📚 Custom notebooks & stationery\n\n" +
					"Handmade products tell a story! What kind of crafts do you enjoy making?",
				Suggestions: []string{"Decorative Items", "Personalized Gifts", "Handmade Toys", "Traditional Pottery"},
			},
		},
		Fallback: Reply{
			Text: "That's interesting! Let me help you explore this further 🤔\n\n" +
				"For any business to succeed, we need to consider:\n\n" +
				"💡 Market demand\n🌱 Sustainability\n💰 Profit potential\n📍 Local relevance\n\n" +
				"Tell me more about what you're passionate about, and I'll suggest some specific business ideas that could work perfectly for you!",
			Suggestions: []string{"I love making things by hand", "I'm good with technology", "I enjoy helping people", "I want something eco-friendly"},
		},
	}
	t.Normalize()
	return t
}
