package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	gpublishing "github.com/gpublishing/website/sdk/go"
)

var (
	siteURL     string
	contactForm gpublishing.ContactForm
	apptForm    gpublishing.AppointmentForm
)

var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that a running server answers /health",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		return gpublishing.NewClient(gpublishing.Config{BaseURL: siteURL}).Health(ctx)
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Send a test submission to a running server",
}

var submitContactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Submit the contact form",
	RunE: func(cmd *cobra.Command, args []string) error {
		reply, err := gpublishing.NewClient(gpublishing.Config{BaseURL: siteURL}).SubmitContact(cmd.Context(), contactForm)
		return printReply(cmd, reply, err)
	},
}

var submitAppointmentCmd = &cobra.Command{
	Use:   "appointment",
	Short: "Submit the appointment form",
	RunE: func(cmd *cobra.Command, args []string) error {
		reply, err := gpublishing.NewClient(gpublishing.Config{BaseURL: siteURL}).SubmitAppointment(cmd.Context(), apptForm)
		return printReply(cmd, reply, err)
	},
}

func init() {
	for _, c := range []*cobra.Command{healthcheckCmd, submitCmd} {
		c.PersistentFlags().StringVar(&siteURL, "url", "http://localhost:3000", "base URL of the running server")
	}

	f := submitContactCmd.Flags()
	f.StringVar(&contactForm.Name, "name", "", "submitter name")
	f.StringVar(&contactForm.Email, "email", "", "submitter email")
	f.StringVar(&contactForm.Subject, "subject", "", "optional subject")
	f.StringVar(&contactForm.Message, "message", "", "message text")

	f = submitAppointmentCmd.Flags()
	f.StringVar(&apptForm.FullName, "full-name", "", "submitter full name")
	f.StringVar(&apptForm.Email, "email", "", "submitter email")
	f.StringVar(&apptForm.Phone, "phone", "", "submitter phone number")
	f.StringVar(&apptForm.ProjectOption, "project-option", "", "optional project option")
	f.StringVar(&apptForm.Message, "message", "", "optional message")

	submitCmd.AddCommand(submitContactCmd, submitAppointmentCmd)
	rootCmd.AddCommand(healthcheckCmd, submitCmd)
}

func printReply(cmd *cobra.Command, reply *gpublishing.Reply, err error) error {
	if apiErr, ok := gpublishing.IsAPIError(err); ok {
		return fmt.Errorf("server answered %d: %s", apiErr.StatusCode, apiErr.Message)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d %s (request %s)\n", reply.StatusCode, reply.Message, reply.RequestID)
	return nil
}
