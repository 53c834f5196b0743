package studio

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Rana718/synthgen/internal/export"
	"github.com/Rana718/synthgen/internal/generator"
	"github.com/Rana718/synthgen/internal/recipe"
	"github.com/Rana718/synthgen/internal/session"
	"github.com/Rana718/synthgen/internal/studio/common"
)

func currentSession(c *fiber.Ctx) *session.Session {
	return c.Locals(sessionLocal).(*session.Session)
}

func (s *Server) render(c *fiber.Ctx, settings session.Settings, formErr string) error {
	return c.Render("templates/index", pageData(s.cfg.Generator, settings, currentSession(c), formErr))
}

// handleIndex renders the form, plus preview and full table once generated
func (s *Server) handleIndex(c *fiber.Ctx) error {
	return s.render(c, currentSession(c).Settings(), "")
}

// handleSettings stores the submitted form without generating
func (s *Server) handleSettings(c *fiber.Ctx) error {
	sess := currentSession(c)

	settings, err := applyForm(c, s.cfg.Generator, sess.Settings())
	if err != nil {
		c.Status(fiber.StatusBadRequest)
		return s.render(c, sess.Settings(), err.Error())
	}
	sess.SetSettings(settings)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// handleGenerate stores the submitted form and generates a new table
func (s *Server) handleGenerate(c *fiber.Ctx) error {
	sess := currentSession(c)

	settings, err := applyForm(c, s.cfg.Generator, sess.Settings())
	if err != nil {
		c.Status(fiber.StatusBadRequest)
		return s.render(c, sess.Settings(), err.Error())
	}
	sess.SetSettings(settings)

	if _, err := s.service.Generate(sess); err != nil {
		if !isClientError(err) {
			return err
		}
		c.Status(fiber.StatusBadRequest)
		return s.render(c, settings, err.Error())
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// handleDownload sends the session table as synthetic_data.csv
func (s *Server) handleDownload(c *fiber.Ctx) error {
	table, _ := currentSession(c).Table()
	if table == nil {
		return fiber.NewError(fiber.StatusNotFound, "no data generated yet")
	}
	return sendCSV(c, table)
}

func sendCSV(c *fiber.Ctx, table *generator.Table) error {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, table); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, export.CSVContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, export.CSVFileName))
	return c.Send(buf.Bytes())
}

func (s *Server) handleKinds(c *fiber.Ctx) error {
	return common.JSON(c, generator.Kinds())
}

// handleAPIGenerate generates from a JSON request body; ?format=csv returns
// the CSV download instead of JSON
func (s *Server) handleAPIGenerate(c *fiber.Ctx) error {
	var req generator.Request
	if err := c.BodyParser(&req); err != nil {
		if isClientError(err) {
			return common.JSONError(c, fiber.StatusBadRequest, err.Error())
		}
		return common.JSONError(c, fiber.StatusBadRequest, "Invalid request")
	}

	table, err := s.service.GenerateRequest(req)
	if err != nil {
		if isClientError(err) {
			return common.JSONError(c, fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	if c.Query("format") == export.FormatCSV {
		return sendCSV(c, table)
	}
	return common.JSON(c, table)
}

func (s *Server) handleAPITable(c *fiber.Ctx) error {
	table, _ := currentSession(c).Table()
	if table == nil {
		return common.JSONError(c, fiber.StatusNotFound, "no data generated yet")
	}
	return common.JSON(c, table)
}

// handleRecipe exports the session settings as a YAML recipe
func (s *Server) handleRecipe(c *fiber.Ctx) error {
	data, err := recipe.FromRequest(currentSession(c).Settings().Request()).Marshal()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/yaml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="recipe.yaml"`)
	return c.Send(data)
}
