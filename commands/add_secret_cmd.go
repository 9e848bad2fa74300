package commands

import (
	"fmt"
	"os"

	plugins_common "github.com/jfrog/jfrog-cli-core/v2/plugins/common"
	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"
	"github.com/jfrog/jfrog-cli-core/v2/utils/ioutils"
	"github.com/jfrog/jfrog-client-go/utils/log"

	"github.com/os-pipeline/outsystems-pipeline/commands/common"
	"github.com/os-pipeline/outsystems-pipeline/model"
)

type addSecretCommand struct {
	ctx *components.Context
}

func GetAddSecretCommand() components.Command {
	return components.Command{
		Name:        "add-secret",
		Description: "Add an encrypted token to the credentials file",
		Aliases:     []string{"as"},
		Flags: []components.Flag{
			components.NewStringFlag(model.FlagCredentialsFile, "Encrypted credentials file.", components.WithStrDefaultValue(model.DefaultCredentialsFile)),
			components.NewBoolFlag(model.FlagEdit, "Whether to update an existing secret.", components.WithBoolDefaultValue(false)),
		},
		Arguments: []components.Argument{
			{
				Name:        "secret-name",
				Description: fmt.Sprintf("The secret name, e.g. %s or %s.", model.CredentialLifetimeToken, model.CredentialJiraToken),
			},
		},
		Action: func(c *components.Context) error {
			cmd := &addSecretCommand{c}
			return cmd.run()
		},
	}
}

func (c *addSecretCommand) run() error {
	secretName, err := c.getSecretName()
	if err != nil {
		return err
	}

	settings, err := model.NewSettings(c.ctx)
	if err != nil {
		return err
	}
	store := getCredentialStore(settings)

	credentials, err := store.Load()
	if err != nil {
		return err
	}

	if err = c.checkUpdate(credentials, secretName); err != nil {
		return err
	}

	password, err := common.ReadSecretPassword()
	if err != nil {
		return err
	}

	// All the credentials of a file share the same password
	for name, encrypted := range credentials {
		if _, err = common.DecryptSecret(password, encrypted); err != nil {
			log.Debug(fmt.Sprintf("Cannot decrypt %s: %+v", name, err))
			return fmt.Errorf("others secrets are encrypted with a different password, please use the same one")
		}
	}

	secretValue, err := c.readSecretValue()
	if err != nil {
		return err
	}

	encryptedValue, err := common.EncryptSecret(password, secretValue)
	if err != nil {
		return err
	}

	credentials[secretName] = encryptedValue

	if err = store.Save(credentials); err != nil {
		return err
	}

	log.Info(fmt.Sprintf("Secret '%s' saved", secretName))

	return nil
}

func (c *addSecretCommand) getSecretName() (string, error) {
	if len(c.ctx.Arguments) < 1 {
		return "", plugins_common.WrongNumberOfArgumentsHandler(c.ctx)
	}
	return c.ctx.Arguments[0], nil
}

func (c *addSecretCommand) checkUpdate(credentials model.Credentials, secretName string) error {
	_, exists := credentials[secretName]
	if exists && !c.ctx.GetBoolFlagValue(model.FlagEdit) {
		return fmt.Errorf("%s already exists, use --%s to overwrite", secretName, model.FlagEdit)
	}
	return nil
}

func (c *addSecretCommand) readSecretValue() (string, error) {
	secretValue, valueInEnv := os.LookupEnv(model.EnvKeyAddSecretValue)
	if valueInEnv {
		return secretValue, nil
	}

	return ioutils.ScanPasswordFromConsole("Value: ")
}
