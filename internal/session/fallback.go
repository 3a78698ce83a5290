package session

import (
	"math/rand/v2"

	"github.com/cosmusapp/cosmus-go/internal/llm"
	"github.com/cosmusapp/cosmus-go/internal/models"
)

// Canned replies keep the conversation alive when the remote service fails.
// The busy variants are distinct so the caller can show the explorer that the
// tutor tried and will be back, rather than a generic failure.

var busyGreetings = []models.StructuredReply{
	{
		DisplayText: "Saudações, jovem explorador! Todos os nossos sistemas de comunicação de longa distância estão muito ocupados no momento. Tentamos nos conectar várias vezes, mas sem sucesso. Por favor, aguarde um pouco e tente novamente.",
		Suggestions: []string{"O que é um ano-luz?", "Por que o céu é azul?", "Fale sobre a gravidade!"},
	},
}

var fallbackGreetings = []models.StructuredReply{
	{
		DisplayText: "Saudações, jovem explorador! Meus sensores estão detectando uma pequena interferência. Enquanto eu os ajusto, sobre o que você gostaria de conversar?",
		Suggestions: []string{"Qual é a estrela mais próxima?", "Por que Plutão não é um planeta?", "O que é um ano-luz?"},
	},
	{
		DisplayText: "Olá! Parece que atravessamos um cinturão de asteroides e a comunicação está um pouco instável. Mas estou aqui! O que desperta sua curiosidade no cosmos hoje?",
		Suggestions: []string{"Os anéis de Saturno são sólidos?", "Como os buracos negros são formados?", "Existe som no espaço?"},
	},
	{
		DisplayText: "Bem-vindo, jovem aventureiro! A conexão com a base de dados cósmica está um pouco lenta, mas minha vontade de explorar com você é enorme! Qual mistério do universo vamos desvendar?",
		Suggestions: []string{"O que é a Via Láctea?", "Por que o céu é azul?", "Fale sobre a gravidade!"},
	},
}

var busyReply = models.StructuredReply{
	DisplayText: "Comandante, nossa linha de comunicação com a frota estelar está congestionada. Nossos sistemas tentaram restabelecer a conexão automaticamente, mas não foi possível. Por favor, tente novamente em alguns instantes!",
}

var genericReply = models.StructuredReply{
	DisplayText: "Ops! Meu sistema de comunicação parece estar sofrendo alguma interferência cósmica. Você poderia tentar enviar sua mensagem novamente?",
}

// FallbackReply maps a failed Send to a canned reply the UI can show instead
// of an error: a specific "service busy" message for exhausted rate-limit
// retries, a generic interference message otherwise.
func FallbackReply(err error) models.StructuredReply {
	if llm.IsRateLimited(err) {
		return busyReply
	}
	return genericReply
}

// fallbackGreeting picks a canned welcome message for a failed Greet.
func fallbackGreeting(err error) models.StructuredReply {
	if llm.IsRateLimited(err) {
		return busyGreetings[rand.IntN(len(busyGreetings))]
	}
	return fallbackGreetings[rand.IntN(len(fallbackGreetings))]
}
