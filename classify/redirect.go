// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package classify

// Redirect topics for off-domain queries.
const (
	TopicPersonalLife  = "personal_life"
	TopicEntertainment = "entertainment"
	TopicCooking       = "cooking"
	TopicTravel        = "travel"
	TopicHealth        = "health"
	TopicGeneral       = "general"
)

// redirectCascade orders the topics; when a query touches several, the
// earliest wins.
var redirectCascade = []string{
	TopicPersonalLife,
	TopicEntertainment,
	TopicCooking,
	TopicTravel,
	TopicHealth,
	TopicGeneral,
}

// builtinRedirects are served when the corpus does not override a topic.
var builtinRedirects = map[string]string{
	TopicPersonalLife:  "I can't help with personal matters, but I'm happy to assist with your orders, deliveries, or returns.",
	TopicEntertainment: "Entertainment is outside my area. Is there anything about your orders or our products I can help with?",
	TopicCooking:       "I can't help with recipes, but feel free to ask about our products, orders, or deliveries.",
	TopicTravel:        "Travel planning is outside my area. I can help with orders, shipping, and returns.",
	TopicHealth:        "For health questions please consult a professional. I can help with orders, products, and returns.",
	TopicGeneral:       "That's outside what I can help with. I can assist with orders, deliveries, returns, and our products.",
}

// redirectFor resolves a topic to its redirect answer, preferring corpus
// overrides over built-ins. Unknown topics fall through to the general
// answer.
func (c *Classifier) redirectFor(topic string) string {
	if answer, ok := c.redirects[topic]; ok {
		return answer
	}
	if answer, ok := builtinRedirects[topic]; ok {
		return answer
	}
	if answer, ok := c.redirects[TopicGeneral]; ok {
		return answer
	}
	return builtinRedirects[TopicGeneral]
}

// cascadeTopic picks the winning topic from per-topic hit counts.
func cascadeTopic(hits map[string]int) string {
	for _, topic := range redirectCascade {
		if hits[topic] > 0 {
			return topic
		}
	}
	return TopicGeneral
}
