package api

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	analyticsapp "salesboard/internal/analytics/application"
	shareddomain "salesboard/internal/shared/domain"
)

// dashboardPage est le modèle de la page principale
type dashboardPage struct {
	View      string
	Start     string
	End       string
	Error     string
	Ecommerce *analyticsapp.EcommerceView
	Stands    *analyticsapp.StandsView
}

type loginPage struct {
	Error string
}

var pageFuncs = template.FuncMap{
	"day": func(t time.Time) string {
		return t.Format(shareddomain.DateLayout)
	},
	"amount": func(v float64) string {
		return "$" + shareddomain.FormatThousands(int64(v))
	},
	"rank": func(i int) int {
		return i + 1
	},
	"percent": func(v float64) string {
		return fmt.Sprintf("%.1f%%", v)
	},
}

var pages = template.Must(template.New("pages").Funcs(pageFuncs).Parse(pageTemplates))

func (h *Handler) renderLogin(w http.ResponseWriter, status int, message string) {
	h.render(w, status, "login", loginPage{Error: message})
}

func (h *Handler) renderDashboard(w http.ResponseWriter, status int, page dashboardPage) {
	h.render(w, status, "dashboard", page)
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("render page", "page", name, "err", err)
	}
}

const pageTemplates = `
{{define "head"}}<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Salesboard</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
.kpis { display: flex; gap: 2rem; }
.kpi strong { display: block; font-size: 1.5rem; }
table { border-collapse: collapse; margin: 1rem 0; }
td, th { border: 1px solid #ccc; padding: .25rem .5rem; text-align: left; }
.error { color: #b00; }
</style>
</head>
<body>{{end}}

{{define "login"}}{{template "head"}}
<h1>Acceso</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/login">
  <input type="password" name="code" placeholder="Código de acceso" autofocus>
  <button type="submit">Entrar</button>
</form>
</body></html>{{end}}

{{define "kpis"}}
<div class="kpis">
  <div class="kpi">Pedidos<strong>{{.OrderCount}}</strong></div>
  <div class="kpi">Artículos<strong>{{.ItemCount}}</strong></div>
  <div class="kpi">Facturación<strong>{{.RevenueTotal}}</strong></div>
  <div class="kpi">Ticket promedio<strong>{{amount .RevenueAvg}}</strong></div>
</div>{{end}}

{{define "daily"}}
<h2>Ventas diarias</h2>
<table>
<tr><th>Fecha</th><th>Facturación</th><th>Artículos</th><th>Pedidos</th></tr>
{{range .}}<tr><td>{{day .Date}}</td><td>{{.Revenue}}</td><td>{{.ItemCount}}</td><td>{{.OrderCount}}</td></tr>
{{end}}</table>{{end}}

{{define "products"}}
<table>
<tr><th>#</th><th>SKU</th><th>Producto</th><th>Cantidad</th><th>Facturación</th></tr>
{{range $i, $p := .}}<tr><td>{{rank $i}}</td><td>{{$p.SKU}}</td><td>{{$p.Title}}</td><td>{{$p.Quantity}}</td><td>{{$p.Revenue}}</td></tr>
{{end}}</table>{{end}}

{{define "dashboard"}}{{template "head"}}
<form method="get" action="/">
  <select name="view">
    <option value="ecommerce"{{if eq .View "ecommerce"}} selected{{end}}>Ecommerce</option>
    <option value="stands"{{if eq .View "stands"}} selected{{end}}>Stands</option>
  </select>
  <input type="date" name="start" value="{{.Start}}">
  <input type="date" name="end" value="{{.End}}">
  <button type="submit">Actualizar</button>
</form>
<form method="post" action="/logout"><button type="submit">Salir</button></form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}

{{with .Ecommerce}}
<h1>Ecommerce</h1>
{{template "kpis" .KPIs}}
{{template "daily" .Daily}}
<h2>Productos más vendidos</h2>
{{template "products" .TopProducts}}
<h2>Métodos de envío</h2>
<table>
<tr><th>Método</th><th>Pedidos</th><th>%</th></tr>
{{range .Shipping}}<tr><td>{{.Method}}</td><td>{{.OrderCount}}</td><td>{{percent .Percentage}}</td></tr>
{{end}}</table>
{{end}}

{{with .Stands}}
<h1>Stands</h1>
{{template "kpis" .KPIs}}
{{template "daily" .Daily}}
<h2>Facturación por stand</h2>
<table>
<tr><th>Stand</th><th>Facturación</th><th>Artículos</th></tr>
{{range .Stores}}<tr><td>{{.Store}}</td><td>{{.Revenue}}</td><td>{{.ItemCount}}</td></tr>
{{end}}</table>
<h2>Productos más vendidos</h2>
{{template "products" .TopProducts}}
{{range .TopByStore}}<h3>{{.Store}}</h3>
{{template "products" .Products}}
{{end}}
{{end}}
</body></html>{{end}}
`
