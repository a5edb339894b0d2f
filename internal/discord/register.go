package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// slashCommands is the full command set the bot exposes. Registration
// overwrites whatever set was registered before, so removed commands
// disappear on the next start.
var slashCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "help",
		Description: "Muestra la lista de comandos disponibles",
	},
	{
		Name:        "prompt",
		Description: "Haz una pregunta al bot",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("input", "Pregunta", true),
		},
	},
	{
		Name:        "solicitud",
		Description: "Haz una solicitud específica al bot",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("input", "Solicitud", true),
		},
	},
	{
		Name:        "ping",
		Description: "Muestra el ping del bot",
	},
	{
		Name:        "userinfo",
		Description: "Muestra información sobre el usuario",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("target", "El usuario objetivo", true),
		},
	},
	{
		Name:        "reminder",
		Description: "Configura un recordatorio",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("time", "Tiempo en formato 1m, 1h, 1d", true),
			stringOption("message", "Mensaje del recordatorio", true),
		},
	},
	{
		Name:        "mute",
		Description: "Mutea a un usuario",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("target", "El usuario a mutear", true),
			stringOption("reason", "Motivo", false),
		},
	},
	{
		Name:        "unmute",
		Description: "Desmutea a un usuario",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("target", "El usuario a desmutear", true),
		},
	},
	{
		Name:        "ban",
		Description: "Banea a un usuario",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("target", "El usuario a banear", true),
			stringOption("reason", "Motivo", false),
		},
	},
	{
		Name:        "unban",
		Description: "Desbanea a un usuario",
		Options: []*discordgo.ApplicationCommandOption{
			stringOption("userid", "El ID del usuario a desbanear", true),
		},
	},
	{
		Name:        "aislar",
		Description: "Aisla a un usuario",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("target", "El usuario a aislar", true),
			stringOption("reason", "Motivo", false),
		},
	},
	{
		Name:        "unaislar",
		Description: "Desaisla a un usuario",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("target", "El usuario a desaislar", true),
		},
	},
	{
		Name:        "empezar",
		Description: "Inicia una conversación continua con el bot",
	},
	{
		Name:        "salirsa",
		Description: "Despliega el menú para salir de la conversación",
	},
}

// RegisterCommands overwrites the global slash command set. Requires an
// open session so the application id is known.
func (c *Client) RegisterCommands() error {
	appID := c.botUserID()
	if appID == "" {
		return fmt.Errorf("session is not ready, cannot register commands")
	}

	registered, err := c.session.ApplicationCommandBulkOverwrite(appID, "", slashCommands)
	if err != nil {
		return fmt.Errorf("failed to register slash commands: %w", err)
	}

	c.logger.Info("registered slash commands", "count", len(registered))
	return nil
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func userOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        name,
		Description: description,
		Required:    required,
	}
}
