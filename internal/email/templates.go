package email

// Template names used by the notification flows.
const (
	TemplateReservationCreated   = "reservation_created"
	TemplateReservationConfirmed = "reservation_confirmed"
	TemplateTripAssigned         = "trip_assigned"
	TemplateReservationCompleted = "reservation_completed"
	TemplateAdminNewReservation  = "admin_new_reservation"
	TemplateDriverNewTrip        = "driver_new_trip"
)

// DefaultRegistry returns the built-in transactional templates.
func DefaultRegistry() *Registry {
	return NewRegistry(
		reservationCreated,
		reservationConfirmed,
		tripAssigned,
		reservationCompleted,
		adminNewReservation,
		driverNewTrip,
	)
}

const layoutStart = `<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"></head>
<body style="margin:0;padding:0;background:#f4f4f5;font-family:Arial,Helvetica,sans-serif;color:#18181b;">
<div style="max-width:600px;margin:0 auto;padding:24px;">
<div style="background:#ffffff;border-radius:8px;padding:32px;">`

const layoutEnd = `</div>
<p style="text-align:center;font-size:12px;color:#71717a;margin-top:16px;">Traslado &middot; Este es un mensaje automático, por favor no responda a este correo.</p>
</div>
</body>
</html>`

const detailsTable = `<table style="width:100%;border-collapse:collapse;margin:16px 0;">
<tr><td style="padding:6px 0;color:#71717a;">Código</td><td style="padding:6px 0;"><strong>{{confirmation_code}}</strong></td></tr>
<tr><td style="padding:6px 0;color:#71717a;">Origen</td><td style="padding:6px 0;">{{pickup_location}}</td></tr>
<tr><td style="padding:6px 0;color:#71717a;">Destino</td><td style="padding:6px 0;">{{dropoff_location}}</td></tr>
<tr><td style="padding:6px 0;color:#71717a;">Pasajeros</td><td style="padding:6px 0;">{{passenger_count}}</td></tr>
<tr><td style="padding:6px 0;color:#71717a;">Teléfono</td><td style="padding:6px 0;">{{contact_phone}}</td></tr>
{{#if flight_number}}<tr><td style="padding:6px 0;color:#71717a;">Vuelo</td><td style="padding:6px 0;">{{flight_number}}</td></tr>{{/if}}
{{#if special_requirements}}<tr><td style="padding:6px 0;color:#71717a;">Requerimientos</td><td style="padding:6px 0;">{{special_requirements}}</td></tr>{{/if}}
</table>`

const detailsText = `Código: {{confirmation_code}}
Origen: {{pickup_location}}
Destino: {{dropoff_location}}
Pasajeros: {{passenger_count}}
Teléfono: {{contact_phone}}
{{#if flight_number}}Vuelo: {{flight_number}}
{{/if}}{{#if special_requirements}}Requerimientos: {{special_requirements}}
{{/if}}`

const driverBlock = `{{#if driver_name}}<div style="background:#f0fdf4;border-radius:6px;padding:16px;margin:16px 0;">
<p style="margin:0 0 4px 0;"><strong>Conductor:</strong> {{driver_name}}</p>
{{#if vehicle_info}}<p style="margin:0;"><strong>Vehículo:</strong> {{vehicle_info}}</p>{{/if}}
</div>{{/if}}`

var reservationCreated = Template{
	Name:    TemplateReservationCreated,
	Subject: "Reserva recibida - {{confirmation_code}}",
	HTML: layoutStart + `
<h1 style="font-size:22px;margin:0 0 16px 0;">¡Hemos recibido tu reserva!</h1>
<p>Hola {{client_name}},</p>
<p>Tu solicitud de traslado quedó registrada y está pendiente de confirmación. Te avisaremos apenas sea confirmada.</p>
` + detailsTable + `
<p>Guarda tu código de confirmación para cualquier consulta.</p>
` + layoutEnd,
	Text: `Hola {{client_name}},

Tu solicitud de traslado quedó registrada y está pendiente de confirmación.

` + detailsText + `
Guarda tu código de confirmación para cualquier consulta.
`,
}

var reservationConfirmed = Template{
	Name:    TemplateReservationConfirmed,
	Subject: "Reserva confirmada - {{confirmation_code}}",
	HTML: layoutStart + `
<h1 style="font-size:22px;margin:0 0 16px 0;">Tu reserva está confirmada</h1>
<p>Hola {{client_name}},</p>
<p>Confirmamos tu traslado con los siguientes datos:</p>
` + detailsTable + driverBlock + `
<p>Si necesitas modificar algo, contáctanos indicando tu código.</p>
` + layoutEnd,
	Text: `Hola {{client_name}},

Confirmamos tu traslado con los siguientes datos:

` + detailsText + `{{#if driver_name}}Conductor: {{driver_name}}
{{/if}}{{#if vehicle_info}}Vehículo: {{vehicle_info}}
{{/if}}`,
}

var tripAssigned = Template{
	Name:    TemplateTripAssigned,
	Subject: "Conductor asignado - {{confirmation_code}}",
	HTML: layoutStart + `
<h1 style="font-size:22px;margin:0 0 16px 0;">Ya tienes conductor asignado</h1>
<p>Hola {{client_name}},</p>
<p>Tu traslado de <strong>{{pickup_location}}</strong> a <strong>{{dropoff_location}}</strong> ya tiene conductor.</p>
` + driverBlock + `
<p>El conductor se comunicará al {{contact_phone}} si es necesario.</p>
` + layoutEnd,
	Text: `Hola {{client_name}},

Tu traslado de {{pickup_location}} a {{dropoff_location}} ya tiene conductor.
{{#if driver_name}}Conductor: {{driver_name}}
{{/if}}{{#if vehicle_info}}Vehículo: {{vehicle_info}}
{{/if}}
Código: {{confirmation_code}}
`,
}

var reservationCompleted = Template{
	Name:    TemplateReservationCompleted,
	Subject: "Gracias por viajar con nosotros - {{confirmation_code}}",
	HTML: layoutStart + `
<h1 style="font-size:22px;margin:0 0 16px 0;">Traslado completado</h1>
<p>Hola {{client_name}},</p>
<p>Tu traslado de <strong>{{pickup_location}}</strong> a <strong>{{dropoff_location}}</strong> ha finalizado. ¡Gracias por preferirnos!</p>
<p>Código de reserva: <strong>{{confirmation_code}}</strong></p>
` + layoutEnd,
	Text: `Hola {{client_name}},

Tu traslado de {{pickup_location}} a {{dropoff_location}} ha finalizado. ¡Gracias por preferirnos!

Código de reserva: {{confirmation_code}}
`,
}

var adminNewReservation = Template{
	Name:    TemplateAdminNewReservation,
	Subject: "Nueva reserva {{confirmation_code}} - {{client_name}}",
	HTML: layoutStart + `
<h1 style="font-size:22px;margin:0 0 16px 0;">Nueva reserva pendiente</h1>
<p>{{client_name}} registró una nueva reserva que requiere confirmación.</p>
` + detailsTable + `
` + layoutEnd,
	Text: `{{client_name}} registró una nueva reserva que requiere confirmación.

` + detailsText,
}

var driverNewTrip = Template{
	Name:    TemplateDriverNewTrip,
	Subject: "Nuevo traslado asignado - {{confirmation_code}}",
	HTML: layoutStart + `
<h1 style="font-size:22px;margin:0 0 16px 0;">Tienes un nuevo traslado</h1>
<p>Hola {{driver_name}},</p>
<p>Se te asignó el traslado de {{client_name}}:</p>
` + detailsTable + `
` + layoutEnd,
	Text: `Hola {{driver_name}},

Se te asignó el traslado de {{client_name}}:

` + detailsText,
}
