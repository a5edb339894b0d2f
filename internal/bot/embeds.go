package bot

// commandSummary is one help entry rendered as a Comando/Descripción pair.
type commandSummary struct {
	name        string
	description string
}

var helpPageOne = []commandSummary{
	{"/help", "Muestra la lista de comandos disponibles"},
	{"/prompt", "Haz una pregunta al bot"},
	{"/solicitud", "Haz una solicitud específica al bot"},
	{"/ping", "Muestra el ping del bot"},
	{"/userinfo", "Muestra información sobre el usuario"},
	{"/reminder", "Configura un recordatorio"},
	{"/mute", "Mutea a un usuario"},
	{"/unmute", "Desmutea a un usuario"},
	{"/ban", "Banea a un usuario"},
	{"/unban", "Desbanea a un usuario"},
}

var helpPageTwo = []commandSummary{
	{"/aislar", "Aisla a un usuario"},
	{"/unaislar", "Desaisla a un usuario"},
	{"/empezar", "Inicia una conversación continua con el bot"},
}

// helpEmbeds renders the command surface across two embeds; the list does
// not fit one embed's field limit.
func helpEmbeds() []Embed {
	return []Embed{
		{Title: "Comandos S.A", Fields: summaryFields(helpPageOne)},
		{Title: "Comandos S.A - Parte 2", Fields: summaryFields(helpPageTwo)},
	}
}

func summaryFields(summaries []commandSummary) []EmbedField {
	fields := make([]EmbedField, 0, len(summaries)*2)
	for _, s := range summaries {
		fields = append(fields,
			EmbedField{Name: "Comando", Value: s.name},
			EmbedField{Name: "Descripción", Value: s.description},
		)
	}
	return fields
}

// startConversationEmbed invites the user to open a private channel.
func startConversationEmbed() Embed {
	return Embed{
		Title:       "Abrir Conversación con S.A 🤖",
		Description: "Para iniciar una conversación con S.A, haz clic en el botón de abajo.",
	}
}

// closePromptResponse is the embed-plus-button message posted into every
// conversation channel, and reused by the exit menu.
func closePromptResponse() Response {
	return Response{
		Embeds: []Embed{
			{
				Title:       "S.A 🤖",
				Description: "Para salir de la conversación con S.A, haz clic en el botón de abajo.",
			},
		},
		Buttons: []ButtonSpec{
			{CustomID: ButtonCloseConversation, Label: "Salir de la conversación ❌", Style: StyleDanger},
		},
	}
}

// userInfoEmbed renders member details for /userinfo.
func userInfoEmbed(member *Member) Embed {
	nickname := member.Nickname
	if nickname == "" {
		nickname = "Ninguno"
	}

	joined := "N/A"
	if !member.JoinedAt.IsZero() {
		joined = member.JoinedAt.Format("02/01/2006")
	}

	return Embed{
		Title:     "Información del Usuario",
		Thumbnail: member.AvatarURL,
		Fields: []EmbedField{
			{Name: "ID", Value: member.ID, Inline: true},
			{Name: "Apodo", Value: nickname, Inline: true},
			{Name: "Fecha de ingreso", Value: joined},
		},
	}
}
