package rostergen

//nolint:gochecknoglobals // static name pools
var (
	firstNames = []string{
		"Ademir", "Bruno", "Caio", "Danilo", "Everton", "Fábio", "Gabriel", "Hernanes",
		"Igor", "João", "Kaio", "Lucas", "Marcos", "Nilton", "Otávio", "Paulo",
		"Rafael", "Sérgio", "Thiago", "Vinícius", "Wellington", "Yuri",
	}
	lastNames = []string{
		"Almeida", "Barbosa", "Cardoso", "Dias", "Esteves", "Ferreira", "Gomes", "Henrique",
		"Lima", "Martins", "Nascimento", "Oliveira", "Pereira", "Queiroz", "Ribeiro", "Santos",
		"Teixeira", "Vieira",
	}
	defaultTeams = []string{
		"Atlético Serrano", "Botafogo do Vale", "Ceará Litoral", "Esporte Clube Norte",
		"Grêmio Planalto", "União Ribeirinha",
	}
)
