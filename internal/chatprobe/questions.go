package chatprobe

// Questions is the canned probe set. One question per routing topic so a
// full round exercises every context slice the service can assemble.
var Questions = []Question{
	{Text: "Qual o total de carbono incorporado do projeto?"},
	{Text: "Quais categorias mais emitem carbono?"},
	{Text: "Quantos metros cúbicos de concreto tem o projeto?"},
	{Text: "Qual o fator de emissão do concreto usado?"},
	{Text: "E se usarmos concreto de baixo clínquer?"},
	{Text: "Como posso reduzir as emissões do projeto?"},
	{Text: "Qual a emissão por pavimento?"},
	{Text: "Me dê um resumo executivo do desempenho de carbono."},
	{Text: "Compare os cenários disponíveis."},
	{Text: "O projeto atende ao benchmark para edifícios residenciais?"},
	{Text: "Qual a participação das esquadrias?", Category: "glazing"},
}
