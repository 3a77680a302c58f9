// Файл: internal/iiko/employees.go
package iiko

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"

	"pizzabot/internal/models"
)

type employeesXML struct {
	Employees []struct {
		ID           string `xml:"id"`
		Name         string `xml:"name"`
		MainRoleCode string `xml:"mainRoleCode"`
		Deleted      string `xml:"deleted"`
		RoleCodes    struct {
			Strings []string `xml:"string"`
		} `xml:"roleCodes"`
	} `xml:"employee"`
}

type rolesXML struct {
	Roles []struct {
		Code string `xml:"code"`
		Name string `xml:"name"`
	} `xml:"role"`
}

// Employees возвращает сотрудников со справочником должностей: код роли
// берётся из roleCodes, при его отсутствии — из mainRoleCode.
func (c *Client) Employees(ctx context.Context) ([]models.Employee, error) {
	params := url.Values{}
	params.Set("includeDeleted", "false")
	body, _, err := c.get(ctx, "/resto/api/employees", params)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сотрудников: %w", err)
	}

	var parsed employeesXML
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("ошибка разбора XML сотрудников: %w", err)
	}

	roles, err := c.roles(ctx)
	if err != nil {
		return nil, err
	}

	var employees []models.Employee
	for _, e := range parsed.Employees {
		if e.ID == "" {
			continue
		}
		roleCode := ""
		if len(e.RoleCodes.Strings) > 0 {
			roleCode = e.RoleCodes.Strings[0]
		}
		if roleCode == "" {
			roleCode = e.MainRoleCode
		}
		roleName := "—"
		if name, ok := roles[roleCode]; ok && roleCode != "" {
			roleName = name
		}
		name := e.Name
		if name == "" {
			name = "Неизвестно"
		}
		employees = append(employees, models.Employee{
			ID:       e.ID,
			Name:     name,
			RoleCode: roleCode,
			RoleName: roleName,
			Deleted:  e.Deleted == "true",
		})
	}
	return employees, nil
}

// roles возвращает справочник должностей: код -> полное название.
func (c *Client) roles(ctx context.Context) (map[string]string, error) {
	body, _, err := c.get(ctx, "/resto/api/employees/roles", nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения справочника должностей: %w", err)
	}

	var parsed rolesXML
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("ошибка разбора XML должностей: %w", err)
	}

	roles := make(map[string]string, len(parsed.Roles))
	for _, r := range parsed.Roles {
		if r.Code != "" && r.Name != "" {
			roles[r.Code] = r.Name
		}
	}
	return roles, nil
}
